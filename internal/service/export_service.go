package service

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"studentboard/internal/model"
)

// exportHeader is the column order shared by the CSV export and the importer.
var exportHeader = []string{"name", "student_id", "course", "gpa", "email", "notes"}

type ExportService struct {
	students *StudentService
}

func NewExportService(students *StudentService) *ExportService {
	return &ExportService{students: students}
}

// JSON renders the full record set in the same array shape the importer
// accepts, so an export can be re-imported as-is.
func (s *ExportService) JSON() ([]byte, error) {
	students, err := s.students.ListAll()
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = make([]model.Student, 0)
	}
	return json.MarshalIndent(students, "", "  ")
}

// CSV writes the full record set with a header row.
func (s *ExportService) CSV(w io.Writer) error {
	students, err := s.students.ListAll()
	if err != nil {
		return err
	}
	return writeStudentsCSV(w, students)
}

func writeStudentsCSV(w io.Writer, students []model.Student) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for _, student := range students {
		row := []string{
			student.Name,
			student.StudentID,
			student.Course,
			strconv.FormatFloat(student.GPA, 'f', -1, 64),
			student.Email,
			student.Notes,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
