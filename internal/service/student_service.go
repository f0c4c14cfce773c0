package service

import (
	"errors"
	"fmt"
	"math"

	"studentboard/internal/config"
	"studentboard/internal/model"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrDuplicateStudent = errors.New("student_id already exists")
	ErrInvalidStudent   = errors.New("invalid student")
)

// sortColumns whitelists the columns ListStudents may order by.
var sortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"student_id": "student_id",
	"course":     "course",
	"gpa":        "gpa",
}

type StudentService struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db, validate: validator.New()}
}

func (s *StudentService) validateStudent(student *model.Student) error {
	if err := s.validate.Struct(student); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStudent, err)
	}
	if student.GPA > config.GPAMax {
		return fmt.Errorf("%w: gpa %.2f exceeds maximum %.2f", ErrInvalidStudent, student.GPA, config.GPAMax)
	}
	return nil
}

// CreateStudent validates and stores a new record, assigning its ID.
func (s *StudentService) CreateStudent(student *model.Student) error {
	if err := s.validateStudent(student); err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&model.Student{}).Where("student_id = ?", student.StudentID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateStudent, student.StudentID)
	}

	return s.db.Create(student).Error
}

func (s *StudentService) GetStudent(id uint) (*model.Student, error) {
	var student model.Student
	if err := s.db.First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

// UpdateStudent overwrites every mutable column of the record with the given
// field values and returns the updated record.
func (s *StudentService) UpdateStudent(id uint, fields *model.Student) (*model.Student, error) {
	student, err := s.GetStudent(id)
	if err != nil {
		return nil, err
	}

	fields.ID = id
	if err := s.validateStudent(fields); err != nil {
		return nil, err
	}

	if fields.StudentID != student.StudentID {
		var count int64
		if err := s.db.Model(&model.Student{}).Where("student_id = ? AND id <> ?", fields.StudentID, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStudent, fields.StudentID)
		}
	}

	err = s.db.Model(student).
		Select("name", "student_id", "course", "gpa", "email", "notes").
		Updates(fields).Error
	if err != nil {
		return nil, err
	}
	return s.GetStudent(id)
}

func (s *StudentService) DeleteStudent(id uint) error {
	result := s.db.Delete(&model.Student{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// ClearAll removes every record and reports how many were deleted.
func (s *StudentService) ClearAll() (int64, error) {
	result := s.db.Where("1 = 1").Delete(&model.Student{})
	return result.RowsAffected, result.Error
}

// ListStudents filters by substring match on name/student_id, equality on
// course and a GPA range, then sorts and paginates.
func (s *StudentService) ListStudents(page, limit int, sortBy, sortOrder, search, course string, gpaMin, gpaMax float64) ([]model.Student, int64, int, error) {
	var students []model.Student
	dbQuery := s.db.Model(&model.Student{})

	// Apply filters
	if search != "" {
		pattern := "%" + search + "%"
		dbQuery = dbQuery.Where("name LIKE ? OR student_id LIKE ?", pattern, pattern)
	}
	if course != "" {
		dbQuery = dbQuery.Where("course = ?", course)
	}
	if gpaMin > 0 {
		dbQuery = dbQuery.Where("gpa >= ?", gpaMin)
	}
	if gpaMax > 0 {
		dbQuery = dbQuery.Where("gpa <= ?", gpaMax)
	}

	// Apply sorting
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "name"
	}
	if sortOrder != "desc" {
		sortOrder = "asc"
	}
	dbQuery = dbQuery.Order(column + " " + sortOrder)

	// Pagination
	var totalCount int64
	if err := dbQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, 0, err
	}
	if err := dbQuery.Offset((page - 1) * limit).Limit(limit).Find(&students).Error; err != nil {
		return nil, 0, 0, err
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(limit)))

	return students, totalCount, totalPages, nil
}

// ListAll returns every record ordered by id. Used by the exporter and the
// insight prompt builder.
func (s *StudentService) ListAll() ([]model.Student, error) {
	var students []model.Student
	if err := s.db.Order("id").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// ExistsByKey reports whether a record with the given duplicate-key value
// exists. key is restricted to the configured duplicate columns.
func (s *StudentService) ExistsByKey(key, value string) (bool, error) {
	if key != "student_id" && key != "name" {
		return false, fmt.Errorf("unsupported duplicate key %q", key)
	}
	var count int64
	err := s.db.Model(&model.Student{}).Where(key+" = ?", value).Count(&count).Error
	return count > 0, err
}
