package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/schoolsharthi/webclient/internal/models"
)

type NotesBundle struct{ c *Client }

type NoteFilters struct {
	ClassLevel string
	Subject    string
	Chapter    string
	Skip       int
	Limit      int
}

func (f NoteFilters) query() url.Values {
	q := url.Values{}
	setStr(q, "class_level", f.ClassLevel)
	setStr(q, "subject", f.Subject)
	setStr(q, "chapter", f.Chapter)
	setInt(q, "skip", f.Skip)
	setInt(q, "limit", f.Limit)
	return q
}

func (b *NotesBundle) List(ctx context.Context, f NoteFilters) ([]models.Note, error) {
	var out []models.Note
	if err := b.c.getJSON(ctx, "notes", "/api/notes/", f.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *NotesBundle) Get(ctx context.Context, id int) (*models.Note, error) {
	var out models.Note
	if err := b.c.getJSON(ctx, "notes", fmt.Sprintf("/api/notes/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *NotesBundle) Download(ctx context.Context, id int) (*models.NoteDownload, error) {
	var out models.NoteDownload
	if err := b.c.postJSON(ctx, "notes", fmt.Sprintf("/api/notes/%d/download", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func setStr(q url.Values, key, val string) {
	if val != "" {
		q.Set(key, val)
	}
}

func setInt(q url.Values, key string, val int) {
	if val != 0 {
		q.Set(key, strconv.Itoa(val))
	}
}
