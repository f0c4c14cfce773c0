package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

var (
	// ErrAssistantUnavailable is returned when no Gemini client is configured.
	ErrAssistantUnavailable = errors.New("assistant unavailable: GEMINI_API_KEY not configured")

	// ErrGeneration wraps errors coming back from the generation endpoint.
	ErrGeneration = errors.New("generation endpoint error")
)

// ContentGenerator is the slice of *genai.GenerativeModel the insight service
// needs. Tests substitute a fake.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type InsightService struct {
	generator ContentGenerator
	students  *StudentService
}

func NewInsightService(generator ContentGenerator, students *StudentService) *InsightService {
	return &InsightService{generator: generator, students: students}
}

// Ask embeds the full record set and the question into a prompt and returns
// the model's answer verbatim. Every call ships the whole table to the
// generation endpoint.
func (s *InsightService) Ask(ctx context.Context, question string) (string, error) {
	if s.generator == nil {
		return "", ErrAssistantUnavailable
	}

	records, err := s.recordContext()
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`You are a helpful assistant for a student management system.
Here is the current student data in CSV format:

%s

User question: %s

Answer based on the data provided. If the data is empty, say so.
Keep the answer concise and professional.`, records, question)

	return s.generate(ctx, prompt)
}

// PerformanceReview generates a review and study plan for one student.
func (s *InsightService) PerformanceReview(ctx context.Context, id uint) (string, error) {
	if s.generator == nil {
		return "", ErrAssistantUnavailable
	}

	student, err := s.students.GetStudent(id)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Write a personalized performance review and study plan for the following student:
Name: %s
Course: %s
GPA: %.2f

The review should be encouraging but honest. Suggest study tips based on their GPA.`,
		student.Name, student.Course, student.GPA)

	return s.generate(ctx, prompt)
}

func (s *InsightService) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.generator.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: response contained no text", ErrGeneration)
	}
	return text, nil
}

// recordContext renders every record as CSV text for prompt embedding.
func (s *InsightService) recordContext() (string, error) {
	students, err := s.students.ListAll()
	if err != nil {
		return "", err
	}
	if len(students) == 0 {
		return "No student data available.", nil
	}

	var sb strings.Builder
	if err := writeStudentsCSV(&sb, students); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}
