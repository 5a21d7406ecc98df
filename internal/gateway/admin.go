package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/schoolsharthi/webclient/internal/models"
)

type AdminBundle struct{ c *Client }

type Page struct {
	Skip  int
	Limit int
}

func (p Page) query() url.Values {
	q := url.Values{}
	setInt(q, "skip", p.Skip)
	setInt(q, "limit", p.Limit)
	return q
}

type NoteUpload struct {
	Title       string
	ClassLevel  string
	Subject     string
	Chapter     string
	Description string
	File        FileUpload
	Thumbnail   *FileUpload
}

type PYQUpload struct {
	Title         string
	ExamType      string
	Year          int
	ClassLevel    string
	Subject       string
	QuestionPaper *FileUpload
	AnswerKey     *FileUpload
	Solution      *FileUpload
}

func (b *AdminBundle) UploadNote(ctx context.Context, up NoteUpload) (*models.Note, error) {
	form := NewForm().
		Field("title", up.Title).
		Field("class_level", up.ClassLevel).
		Field("subject", up.Subject).
		Field("chapter", up.Chapter).
		OptionalField("description", up.Description).
		File("file", up.File).
		OptionalFile("thumbnail", up.Thumbnail)

	var out models.Note
	if err := b.c.postForm(ctx, "admin", "/api/admin/notes/upload", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *AdminBundle) UploadPYQ(ctx context.Context, up PYQUpload) (*models.PYQ, error) {
	form := NewForm().
		Field("title", up.Title).
		Field("exam_type", up.ExamType).
		Field("year", strconv.Itoa(up.Year)).
		OptionalField("class_level", up.ClassLevel).
		OptionalField("subject", up.Subject).
		OptionalFile("question_paper", up.QuestionPaper).
		OptionalFile("answer_key", up.AnswerKey).
		OptionalFile("solution", up.Solution)

	var out models.PYQ
	if err := b.c.postForm(ctx, "admin", "/api/admin/pyqs/upload", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *AdminBundle) PendingNotes(ctx context.Context) ([]models.Note, error) {
	var out []models.Note
	if err := b.c.getJSON(ctx, "admin", "/api/admin/notes/pending", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *AdminBundle) ApproveNote(ctx context.Context, id int) error {
	return b.c.postJSON(ctx, "admin", fmt.Sprintf("/api/admin/notes/%d/approve", id), nil, nil)
}

func (b *AdminBundle) DeleteNote(ctx context.Context, id int) error {
	return b.c.deleteJSON(ctx, "admin", fmt.Sprintf("/api/admin/notes/%d", id), nil)
}

func (b *AdminBundle) AllNotes(ctx context.Context, p Page) ([]models.Note, error) {
	var out []models.Note
	if err := b.c.getJSON(ctx, "admin", "/api/admin/notes/all", p.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *AdminBundle) AllPYQs(ctx context.Context, p Page) ([]models.PYQ, error) {
	var out []models.PYQ
	if err := b.c.getJSON(ctx, "admin", "/api/admin/pyqs/all", p.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *AdminBundle) DeletePYQ(ctx context.Context, id int) error {
	return b.c.deleteJSON(ctx, "admin", fmt.Sprintf("/api/admin/pyqs/%d", id), nil)
}

func (b *AdminBundle) ApprovePYQ(ctx context.Context, id int) error {
	return b.c.postJSON(ctx, "admin", fmt.Sprintf("/api/admin/pyqs/%d/approve", id), nil, nil)
}

func (b *AdminBundle) AllUsers(ctx context.Context, p Page) ([]models.User, error) {
	var out []models.User
	if err := b.c.getJSON(ctx, "admin", "/api/admin/users/all", p.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *AdminBundle) ToggleUserActive(ctx context.Context, id int) error {
	return b.c.postJSON(ctx, "admin", fmt.Sprintf("/api/admin/users/%d/toggle-active", id), nil, nil)
}

func (b *AdminBundle) DeleteUser(ctx context.Context, id int) error {
	return b.c.deleteJSON(ctx, "admin", fmt.Sprintf("/api/admin/users/%d", id), nil)
}

func (b *AdminBundle) MakeUserAdmin(ctx context.Context, id int) error {
	return b.c.postJSON(ctx, "admin", fmt.Sprintf("/api/admin/users/%d/make-admin", id), nil, nil)
}

// UpdateAIKey uses multipart form fields api_key and provider, matching the
// upstream handler exactly.
func (b *AdminBundle) UpdateAIKey(ctx context.Context, apiKey, provider string) error {
	if provider == "" {
		provider = "groq"
	}
	form := NewForm().
		Field("api_key", apiKey).
		Field("provider", provider)
	return b.c.postForm(ctx, "admin", "/api/admin/settings/ai-key", form, nil)
}

func (b *AdminBundle) AIKeyStatus(ctx context.Context) (*models.AIKeyStatus, error) {
	var out models.AIKeyStatus
	if err := b.c.getJSON(ctx, "admin", "/api/admin/settings/ai-key", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
