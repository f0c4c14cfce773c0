package main

import (
	"context"
	"log"
	"net/http"

	"studentboard/internal/config"
	"studentboard/internal/database"
	"studentboard/internal/handler"
	"studentboard/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func main() {
	// Initialize database
	db := database.InitDB()

	if err := config.InitGemini(context.Background()); err != nil {
		log.Fatal("Failed to initialize Gemini client:", err)
	}

	// Initialize services
	studentService := service.NewStudentService(db)
	exportService := service.NewExportService(studentService)
	importService := service.NewImportService(studentService)

	var generator service.ContentGenerator
	if config.GeminiClient != nil {
		generator = config.GeminiClient
	}
	insightService := service.NewInsightService(generator, studentService)

	// Initialize handlers
	studentHandler := handler.NewStudentHandler(studentService, exportService)
	importHandler := handler.NewImportHandler(importService)
	insightHandler := handler.NewInsightHandler(insightService)

	// Setup router
	r := mux.NewRouter()

	r.HandleFunc("/students", studentHandler.ListStudents).Methods("GET")
	r.HandleFunc("/students", studentHandler.CreateStudent).Methods("POST")
	r.HandleFunc("/students", studentHandler.ClearStudents).Methods("DELETE")
	r.HandleFunc("/students/import", importHandler.ImportStudents).Methods("POST")
	r.HandleFunc("/students/export", studentHandler.ExportStudents).Methods("GET")
	r.HandleFunc("/students/{id:[0-9]+}", studentHandler.GetStudent).Methods("GET")
	r.HandleFunc("/students/{id:[0-9]+}", studentHandler.UpdateStudent).Methods("PUT")
	r.HandleFunc("/students/{id:[0-9]+}", studentHandler.DeleteStudent).Methods("DELETE")
	r.HandleFunc("/students/{id:[0-9]+}/review", insightHandler.PerformanceReview).Methods("POST")
	r.HandleFunc("/insights/ask", insightHandler.Ask).Methods("POST")

	// Start server
	log.Println("Server running on port " + config.Port)
	log.Fatal(http.ListenAndServe(":"+config.Port,
		handlers.CORS(
			handlers.AllowedOrigins([]string{config.AllowedOrigin}),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE"}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(r)))
}
