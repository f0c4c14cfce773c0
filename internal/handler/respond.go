package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"studentboard/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// writeError maps service errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidStudent), errors.Is(err, service.ErrBadPayload):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrDuplicateStudent):
		status = http.StatusConflict
	case errors.Is(err, service.ErrAssistantUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, service.ErrGeneration):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
