package gateway

import (
	"context"
	"net/url"

	"github.com/schoolsharthi/webclient/internal/models"
)

type RevisionBundle struct{ c *Client }

type RevisionRequest struct {
	Query      string `json:"query"`
	Subject    string `json:"subject,omitempty"`
	ClassLevel string `json:"class_level,omitempty"`
	Language   string `json:"language,omitempty"`
}

func (b *RevisionBundle) Generate(ctx context.Context, req RevisionRequest) (*models.RevisionPack, error) {
	var out models.RevisionPack
	if err := b.c.postJSON(ctx, "revision", "/api/revision/generate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *RevisionBundle) Quick(ctx context.Context, subject, classLevel, language string) (*models.RevisionPack, error) {
	q := url.Values{}
	q.Set("subject", subject)
	setStr(q, "class_level", classLevel)
	setStr(q, "language", language)

	var out models.RevisionPack
	if err := b.c.getJSON(ctx, "revision", "/api/revision/quick", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
