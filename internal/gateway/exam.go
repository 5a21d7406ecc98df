package gateway

import (
	"context"
	"fmt"
	"net/url"

	"github.com/schoolsharthi/webclient/internal/models"
)

type ExamBundle struct{ c *Client }

type CreateExamRequest struct {
	Subject         string `json:"subject,omitempty"`
	ClassLevel      string `json:"class_level,omitempty"`
	ExamType        string `json:"exam_type,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	TotalQuestions  int    `json:"total_questions,omitempty"`
	Difficulty      string `json:"difficulty,omitempty"`
}

type SubmitAnswerRequest struct {
	QuestionID       int    `json:"question_id"`
	SelectedAnswer   string `json:"selected_answer"`
	TimeSpentSeconds int    `json:"time_spent_seconds,omitempty"`
}

func (b *ExamBundle) Create(ctx context.Context, req CreateExamRequest) (*models.Exam, error) {
	var out models.Exam
	if err := b.c.postJSON(ctx, "exam", "/api/exam/create", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *ExamBundle) Start(ctx context.Context, id int) (*models.Exam, error) {
	var out models.Exam
	if err := b.c.postJSON(ctx, "exam", fmt.Sprintf("/api/exam/%d/start", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *ExamBundle) Get(ctx context.Context, id int) (*models.Exam, error) {
	var out models.Exam
	if err := b.c.getJSON(ctx, "exam", fmt.Sprintf("/api/exam/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *ExamBundle) Questions(ctx context.Context, id int) ([]models.ExamQuestion, error) {
	var out []models.ExamQuestion
	if err := b.c.getJSON(ctx, "exam", fmt.Sprintf("/api/exam/%d/questions", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *ExamBundle) SubmitAnswer(ctx context.Context, id int, req SubmitAnswerRequest) error {
	return b.c.postJSON(ctx, "exam", fmt.Sprintf("/api/exam/%d/answer", id), req, nil)
}

func (b *ExamBundle) Submit(ctx context.Context, id int) (*models.ExamResult, error) {
	var out models.ExamResult
	if err := b.c.postJSON(ctx, "exam", fmt.Sprintf("/api/exam/%d/submit", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *ExamBundle) Result(ctx context.Context, id int) (*models.ExamResult, error) {
	var out models.ExamResult
	if err := b.c.getJSON(ctx, "exam", fmt.Sprintf("/api/exam/%d/result", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *ExamBundle) Analysis(ctx context.Context, id int, language string) (map[string]any, error) {
	q := url.Values{}
	setStr(q, "language", language)

	var out map[string]any
	if err := b.c.getJSON(ctx, "exam", fmt.Sprintf("/api/exam/%d/analysis", id), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *ExamBundle) List(ctx context.Context) ([]models.Exam, error) {
	var out []models.Exam
	if err := b.c.getJSON(ctx, "exam", "/api/exam/list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
