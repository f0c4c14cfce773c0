package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	Port          string
	DBPath        string
	DBURL         string
	AllowedOrigin string
	GeminiAPIKey  string
	GeminiModel   string
	DuplicateKey  string
	GPAMax        float64
)

func init() {
	Load()
}

// Load reads .env (when present) and resolves all settings from the
// environment. Tests call it again after overriding variables.
func Load() {
	_ = godotenv.Load()

	Port = getenv("PORT", "8080")
	DBPath = getenv("DB_PATH", "students.db")
	DBURL = os.Getenv("DB_URL")
	AllowedOrigin = getenv("ALLOWED_ORIGIN", "http://localhost:3000")
	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	GeminiModel = getenv("GEMINI_MODEL", "gemini-2.5-flash")

	DuplicateKey = getenv("IMPORT_DUPLICATE_KEY", "student_id")
	if DuplicateKey != "student_id" && DuplicateKey != "name" {
		log.Printf("Unknown IMPORT_DUPLICATE_KEY %q, falling back to student_id", DuplicateKey)
		DuplicateKey = "student_id"
	}

	GPAMax = 4.0
	if raw := os.Getenv("GPA_MAX"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			log.Printf("Invalid GPA_MAX %q, falling back to 4.0", raw)
		} else {
			GPAMax = parsed
		}
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
