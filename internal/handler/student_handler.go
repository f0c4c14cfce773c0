package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"studentboard/internal/model"
	"studentboard/internal/service"

	"github.com/gorilla/mux"
)

type StudentHandler struct {
	studentService *service.StudentService
	exportService  *service.ExportService
}

func NewStudentHandler(studentService *service.StudentService, exportService *service.ExportService) *StudentHandler {
	return &StudentHandler{studentService: studentService, exportService: exportService}
}

func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit < 1 {
		limit = 10
	}
	sortBy := query.Get("sort_by")
	if sortBy == "" {
		sortBy = "name"
	}
	sortOrder := query.Get("sort_order")
	if sortOrder == "" {
		sortOrder = "asc"
	}
	search := query.Get("search")
	course := query.Get("course")
	gpaMin, _ := strconv.ParseFloat(query.Get("gpa_min"), 64)
	gpaMax, _ := strconv.ParseFloat(query.Get("gpa_max"), 64)

	students, totalCount, totalPages, err := h.studentService.ListStudents(page, limit, sortBy, sortOrder, search, course, gpaMin, gpaMax)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":       students,
		"page":       page,
		"limit":      limit,
		"total":      totalCount,
		"totalPages": totalPages,
	})
}

func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var student model.Student
	if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body: " + err.Error()})
		return
	}
	student.ID = 0

	if err := h.studentService.CreateStudent(&student); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, student)
}

func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	student, err := h.studentService.GetStudent(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var fields model.Student
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body: " + err.Error()})
		return
	}

	student, err := h.studentService.UpdateStudent(id, &fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.studentService.DeleteStudent(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StudentHandler) ClearStudents(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.studentService.ClearAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// ExportStudents streams the record set as a download, ?format=json|csv.
func (h *StudentHandler) ExportStudents(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	switch format {
	case "json":
		data, err := h.exportService.JSON()
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="students.json"`)
		w.Write(data)
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="students.csv"`)
		if err := h.exportService.CSV(w); err != nil {
			// Headers are already out; all we can do is log.
			log.Println("Error writing CSV export:", err)
		}
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported export format: " + format})
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid student id"})
		return 0, false
	}
	return uint(id), true
}
