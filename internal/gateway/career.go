package gateway

import (
	"context"
	"fmt"

	"github.com/schoolsharthi/webclient/internal/models"
)

type CareerBundle struct{ c *Client }

type CareerQueryRequest struct {
	Query        string `json:"query"`
	GuidanceType string `json:"guidance_type,omitempty"`
}

func (b *CareerBundle) AskQuery(ctx context.Context, req CareerQueryRequest) (*models.CareerQuery, error) {
	var out models.CareerQuery
	if err := b.c.postJSON(ctx, "career", "/api/career/query", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *CareerBundle) Queries(ctx context.Context) ([]models.CareerQuery, error) {
	var out []models.CareerQuery
	if err := b.c.getJSON(ctx, "career", "/api/career/queries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *CareerBundle) Query(ctx context.Context, id int) (*models.CareerQuery, error) {
	var out models.CareerQuery
	if err := b.c.getJSON(ctx, "career", fmt.Sprintf("/api/career/queries/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *CareerBundle) GuidanceTypes(ctx context.Context) (*models.GuidanceTypes, error) {
	var out models.GuidanceTypes
	if err := b.c.getJSON(ctx, "career", "/api/career/guidance-types", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
