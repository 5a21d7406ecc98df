package gateway

import (
	"context"
	"fmt"
	"net/url"

	"github.com/schoolsharthi/webclient/internal/models"
)

type PYQsBundle struct{ c *Client }

type PYQFilters struct {
	ExamType   string
	ClassLevel string
	Subject    string
	Year       int
	Skip       int
	Limit      int
}

func (f PYQFilters) query() url.Values {
	q := url.Values{}
	setStr(q, "exam_type", f.ExamType)
	setStr(q, "class_level", f.ClassLevel)
	setStr(q, "subject", f.Subject)
	setInt(q, "year", f.Year)
	setInt(q, "skip", f.Skip)
	setInt(q, "limit", f.Limit)
	return q
}

func (b *PYQsBundle) List(ctx context.Context, f PYQFilters) ([]models.PYQ, error) {
	var out []models.PYQ
	if err := b.c.getJSON(ctx, "pyqs", "/api/pyqs/", f.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *PYQsBundle) Get(ctx context.Context, id int) (*models.PYQ, error) {
	var out models.PYQ
	if err := b.c.getJSON(ctx, "pyqs", fmt.Sprintf("/api/pyqs/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *PYQsBundle) Download(ctx context.Context, id int) (*models.PYQDownload, error) {
	var out models.PYQDownload
	if err := b.c.postJSON(ctx, "pyqs", fmt.Sprintf("/api/pyqs/%d/download", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
