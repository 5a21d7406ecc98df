package gateway

import (
	"context"
	"net/url"

	"github.com/schoolsharthi/webclient/internal/models"
)

type LearningBundle struct{ c *Client }

func (b *LearningBundle) Performance(ctx context.Context) (*models.Performance, error) {
	var out models.Performance
	if err := b.c.getJSON(ctx, "learning", "/api/learning/performance", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *LearningBundle) WeakTopicsSummary(ctx context.Context, language string) (*models.WeakTopicsSummary, error) {
	q := url.Values{}
	setStr(q, "language", language)

	var out models.WeakTopicsSummary
	if err := b.c.getJSON(ctx, "learning", "/api/learning/weak-topics-summary", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *LearningBundle) Recommendations(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := b.c.getJSON(ctx, "learning", "/api/learning/recommendations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
