package gateway

import (
	"context"
	"net/url"

	"github.com/schoolsharthi/webclient/internal/models"
)

type SearchBundle struct{ c *Client }

type SearchRequest struct {
	Query      string `json:"query"`
	SearchType string `json:"search_type,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

func (b *SearchBundle) Search(ctx context.Context, req SearchRequest) (*models.SearchResult, error) {
	var out models.SearchResult
	if err := b.c.postJSON(ctx, "search", "/api/search/search", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *SearchBundle) Quick(ctx context.Context, query, searchType string, limit int) (*models.SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	setStr(q, "type", searchType)
	setInt(q, "limit", limit)

	var out models.SearchResult
	if err := b.c.getJSON(ctx, "search", "/api/search/quick", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
