package model

// Student is a single student record. StudentID is the externally assigned
// identifier carried by import files; ID is assigned by the store.
type Student struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"not null" json:"name" validate:"required"`
	StudentID string  `gorm:"uniqueIndex;not null" json:"student_id" validate:"required"`
	Course    string  `json:"course"`
	GPA       float64 `json:"gpa" validate:"gte=0"`
	Email     string  `json:"email" validate:"omitempty,email"`
	Notes     string  `json:"notes"`
}
