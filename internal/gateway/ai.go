package gateway

import (
	"context"
	"fmt"

	"github.com/schoolsharthi/webclient/internal/models"
)

type AIBundle struct{ c *Client }

type DoubtRequest struct {
	Question   string `json:"question"`
	Subject    string `json:"subject,omitempty"`
	ClassLevel string `json:"class_level,omitempty"`
	Chapter    string `json:"chapter,omitempty"`
}

type ImportantQuestionsRequest struct {
	Subject    string `json:"subject"`
	ClassLevel string `json:"class_level"`
	Chapter    string `json:"chapter"`
	Count      int    `json:"count,omitempty"`
}

type PYQPatternsRequest struct {
	ExamType  string `json:"exam_type"`
	Subject   string `json:"subject,omitempty"`
	YearRange string `json:"year_range,omitempty"`
}

type StepByStepRequest struct {
	Problem string `json:"problem"`
	Subject string `json:"subject,omitempty"`
}

func (b *AIBundle) AskDoubt(ctx context.Context, req DoubtRequest) (*models.Doubt, error) {
	var out models.Doubt
	if err := b.c.postJSON(ctx, "ai", "/api/ai/doubt", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *AIBundle) Doubts(ctx context.Context) ([]models.Doubt, error) {
	var out []models.Doubt
	if err := b.c.getJSON(ctx, "ai", "/api/ai/doubts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *AIBundle) Doubt(ctx context.Context, id int) (*models.Doubt, error) {
	var out models.Doubt
	if err := b.c.getJSON(ctx, "ai", fmt.Sprintf("/api/ai/doubts/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *AIBundle) ImportantQuestions(ctx context.Context, req ImportantQuestionsRequest) (*models.ImportantQuestions, error) {
	var out models.ImportantQuestions
	if err := b.c.postJSON(ctx, "ai", "/api/ai/important-questions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *AIBundle) PYQPatterns(ctx context.Context, req PYQPatternsRequest) (*models.PYQPatterns, error) {
	var out models.PYQPatterns
	if err := b.c.postJSON(ctx, "ai", "/api/ai/pyq-patterns", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *AIBundle) StepByStep(ctx context.Context, req StepByStepRequest) (*models.StepByStepSolution, error) {
	var out models.StepByStepSolution
	if err := b.c.postJSON(ctx, "ai", "/api/ai/step-by-step", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
