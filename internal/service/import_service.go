package service

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"studentboard/internal/config"
	"studentboard/internal/model"
)

// ErrBadPayload reports an import document that could not be parsed at all.
// Per-record problems never produce it; they are counted in the summary.
var ErrBadPayload = errors.New("malformed import payload")

type ImportSummary struct {
	Inserted          int      `json:"inserted"`
	SkippedDuplicates int      `json:"skipped_duplicates"`
	Invalid           int      `json:"invalid"`
	Errors            []string `json:"errors,omitempty"`
}

type ImportService struct {
	students *StudentService
}

func NewImportService(students *StudentService) *ImportService {
	return &ImportService{students: students}
}

// candidate mirrors the field names of the import file formats.
type candidate struct {
	Name      string  `json:"name"`
	StudentID string  `json:"student_id"`
	Course    string  `json:"course"`
	GPA       float64 `json:"gpa"`
	Email     string  `json:"email"`
	Notes     string  `json:"notes"`
}

// Import dispatches on the file name extension. A payload without a name is
// treated as JSON.
func (s *ImportService) Import(fileName string, r io.Reader) (*ImportSummary, error) {
	if strings.EqualFold(filepath.Ext(fileName), ".csv") {
		return s.ImportCSV(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return s.ImportJSON(data)
}

// ImportJSON imports a JSON array of student objects. Elements that fail to
// decode or validate are counted, not fatal.
func (s *ImportService) ImportJSON(data []byte) (*ImportSummary, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of student objects: %v", ErrBadPayload, err)
	}

	summary := &ImportSummary{}
	seen := make(map[string]bool)
	for i, item := range raw {
		var c candidate
		if err := json.Unmarshal(item, &c); err != nil {
			summary.Invalid++
			summary.Errors = append(summary.Errors, fmt.Sprintf("record %d: %v", i+1, err))
			continue
		}
		s.insert(summary, fmt.Sprintf("record %d", i+1), &c, seen)
	}
	return summary, nil
}

// ImportCSV imports a CSV document with a header row. Columns are matched by
// name, so a CSV export round-trips.
func (s *ImportService) ImportCSV(r io.Reader) (*ImportSummary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing CSV header: %v", ErrBadPayload, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["name"]; !ok {
		return nil, fmt.Errorf("%w: CSV header is missing the name column", ErrBadPayload)
	}
	if _, ok := col["student_id"]; !ok {
		return nil, fmt.Errorf("%w: CSV header is missing the student_id column", ErrBadPayload)
	}

	summary := &ImportSummary{}
	seen := make(map[string]bool)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			summary.Invalid++
			summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		field := func(name string) string {
			if i, ok := col[name]; ok && i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}
		c := candidate{
			Name:      field("name"),
			StudentID: field("student_id"),
			Course:    field("course"),
			Email:     field("email"),
			Notes:     field("notes"),
		}
		if raw := field("gpa"); raw != "" {
			gpa, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				summary.Invalid++
				summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: gpa %q is not a number", line, raw))
				continue
			}
			c.GPA = gpa
		}
		s.insert(summary, fmt.Sprintf("line %d", line), &c, seen)
	}
	return summary, nil
}

// insert validates and stores one candidate, charging the summary. seen
// dedupes within the batch itself.
func (s *ImportService) insert(summary *ImportSummary, pos string, c *candidate, seen map[string]bool) {
	key := c.StudentID
	if config.DuplicateKey == "name" {
		key = c.Name
	}

	if key != "" {
		if seen[key] {
			summary.SkippedDuplicates++
			return
		}
		exists, err := s.students.ExistsByKey(config.DuplicateKey, key)
		if err != nil {
			summary.Invalid++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", pos, err))
			return
		}
		if exists {
			summary.SkippedDuplicates++
			seen[key] = true
			return
		}
	}

	student := &model.Student{
		Name:      c.Name,
		StudentID: c.StudentID,
		Course:    c.Course,
		GPA:       c.GPA,
		Email:     c.Email,
		Notes:     c.Notes,
	}
	if err := s.students.CreateStudent(student); err != nil {
		if errors.Is(err, ErrDuplicateStudent) {
			summary.SkippedDuplicates++
		} else {
			summary.Invalid++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", pos, err))
		}
		return
	}

	seen[key] = true
	summary.Inserted++
}
