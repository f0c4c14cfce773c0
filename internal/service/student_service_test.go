package service_test

import (
	"testing"

	"studentboard/internal/model"
	"studentboard/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal("failed to connect to database:", err)
	}
	if err := db.AutoMigrate(&model.Student{}); err != nil {
		t.Fatal("failed to migrate:", err)
	}
	return db
}

func seedStudents(t *testing.T, svc *service.StudentService, students ...model.Student) []model.Student {
	t.Helper()
	out := make([]model.Student, 0, len(students))
	for _, student := range students {
		s := student
		require.NoError(t, svc.CreateStudent(&s))
		out = append(out, s)
	}
	return out
}

func TestCreateAndGetStudent(t *testing.T) {
	svc := service.NewStudentService(setupTestDB(t))

	student := model.Student{
		Name:      "Alice Chen",
		StudentID: "S001",
		Course:    "Computer Science",
		GPA:       3.8,
		Email:     "alice@example.com",
		Notes:     "dean's list",
	}
	require.NoError(t, svc.CreateStudent(&student))
	assert.NotZero(t, student.ID)

	got, err := svc.GetStudent(student.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Chen", got.Name)
	assert.Equal(t, "S001", got.StudentID)
	assert.Equal(t, "Computer Science", got.Course)
	assert.Equal(t, 3.8, got.GPA)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "dean's list", got.Notes)
}

func TestCreateStudentValidation(t *testing.T) {
	svc := service.NewStudentService(setupTestDB(t))
	seedStudents(t, svc, model.Student{Name: "Alice", StudentID: "S001", GPA: 3.0})

	tests := []struct {
		name    string
		student model.Student
		wantErr error
	}{
		{"missing name", model.Student{StudentID: "S100"}, service.ErrInvalidStudent},
		{"missing student_id", model.Student{Name: "Bob"}, service.ErrInvalidStudent},
		{"negative gpa", model.Student{Name: "Bob", StudentID: "S100", GPA: -1}, service.ErrInvalidStudent},
		{"gpa above maximum", model.Student{Name: "Bob", StudentID: "S100", GPA: 4.5}, service.ErrInvalidStudent},
		{"bad email", model.Student{Name: "Bob", StudentID: "S100", Email: "not-an-email"}, service.ErrInvalidStudent},
		{"duplicate student_id", model.Student{Name: "Bob", StudentID: "S001"}, service.ErrDuplicateStudent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.student
			err := svc.CreateStudent(&s)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateStudent(t *testing.T) {
	svc := service.NewStudentService(setupTestDB(t))
	seeded := seedStudents(t, svc,
		model.Student{Name: "Alice", StudentID: "S001", Course: "Math", GPA: 3.5, Notes: "old notes"},
		model.Student{Name: "Bob", StudentID: "S002", GPA: 2.0},
	)

	// Full overwrite, including resetting fields to zero values.
	updated, err := svc.UpdateStudent(seeded[0].ID, &model.Student{
		Name:      "Alice Chen",
		StudentID: "S001",
		Course:    "Physics",
		GPA:       3.9,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Chen", updated.Name)
	assert.Equal(t, "Physics", updated.Course)
	assert.Equal(t, 3.9, updated.GPA)
	assert.Empty(t, updated.Notes)

	// Unknown id is a no-op error.
	_, err = svc.UpdateStudent(9999, &model.Student{Name: "Nobody", StudentID: "S999"})
	assert.ErrorIs(t, err, service.ErrStudentNotFound)

	// Moving onto another record's student_id conflicts.
	_, err = svc.UpdateStudent(seeded[1].ID, &model.Student{Name: "Bob", StudentID: "S001"})
	assert.ErrorIs(t, err, service.ErrDuplicateStudent)

	// Invalid fields reject the update and keep the record intact.
	_, err = svc.UpdateStudent(seeded[1].ID, &model.Student{Name: "", StudentID: "S002"})
	assert.ErrorIs(t, err, service.ErrInvalidStudent)
	got, err := svc.GetStudent(seeded[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)
}

func TestDeleteStudent(t *testing.T) {
	svc := service.NewStudentService(setupTestDB(t))
	seeded := seedStudents(t, svc, model.Student{Name: "Alice", StudentID: "S001"})

	require.NoError(t, svc.DeleteStudent(seeded[0].ID))

	_, err := svc.GetStudent(seeded[0].ID)
	assert.ErrorIs(t, err, service.ErrStudentNotFound)

	assert.ErrorIs(t, svc.DeleteStudent(seeded[0].ID), service.ErrStudentNotFound)
}

func TestClearAll(t *testing.T) {
	svc := service.NewStudentService(setupTestDB(t))
	seedStudents(t, svc,
		model.Student{Name: "Alice", StudentID: "S001"},
		model.Student{Name: "Bob", StudentID: "S002"},
		model.Student{Name: "Carol", StudentID: "S003"},
	)

	deleted, err := svc.ClearAll()
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	students, err := svc.ListAll()
	require.NoError(t, err)
	assert.Empty(t, students)

	// A second clear deletes nothing.
	deleted, err = svc.ClearAll()
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestListStudents(t *testing.T) {
	svc := service.NewStudentService(setupTestDB(t))
	seedStudents(t, svc,
		model.Student{Name: "John Doe", StudentID: "S001", Course: "Math", GPA: 3.6},
		model.Student{Name: "Jane Doe", StudentID: "S002", Course: "Science", GPA: 3.4},
		model.Student{Name: "Alice", StudentID: "S003", Course: "Math", GPA: 3.8},
	)

	tests := []struct {
		name        string
		page        int
		limit       int
		search      string
		course      string
		gpaMin      float64
		gpaMax      float64
		expectedLen int
	}{
		{"all students", 1, 10, "", "", 0, 0, 3},
		{"search by name", 1, 10, "John", "", 0, 0, 1},
		{"search by student_id", 1, 10, "S003", "", 0, 0, 1},
		{"filter by course", 1, 10, "", "Math", 0, 0, 2},
		{"filter by gpa range", 1, 10, "", "", 3.4, 3.6, 2},
		{"pagination", 1, 2, "", "", 0, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			students, totalCount, totalPages, err := svc.ListStudents(tt.page, tt.limit, "name", "asc", tt.search, tt.course, tt.gpaMin, tt.gpaMax)
			require.NoError(t, err)
			assert.Len(t, students, tt.expectedLen)
			if tt.limit >= int(totalCount) {
				assert.Equal(t, int64(tt.expectedLen), totalCount)
			}
			assert.GreaterOrEqual(t, totalPages, 1)
		})
	}
}

func TestListStudentsSorting(t *testing.T) {
	svc := service.NewStudentService(setupTestDB(t))
	seedStudents(t, svc,
		model.Student{Name: "Bob", StudentID: "S002", GPA: 2.0},
		model.Student{Name: "Alice", StudentID: "S001", GPA: 4.0},
	)

	students, _, _, err := svc.ListStudents(1, 10, "gpa", "desc", "", "", 0, 0)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Alice", students[0].Name)

	// Unknown sort column falls back to name.
	students, _, _, err = svc.ListStudents(1, 10, "evil; DROP TABLE students", "asc", "", "", 0, 0)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Alice", students[0].Name)
}
