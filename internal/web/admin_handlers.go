package web

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/schoolsharthi/webclient/internal/gateway"
	"github.com/schoolsharthi/webclient/internal/query"
)

type AdminHandler struct {
	API   *gateway.Client
	Cache *query.Cache
}

// Page aggregates the admin panel: pending notes waiting for approval plus
// the current AI key status.
func (h *AdminHandler) Page(c echo.Context) error {
	pending, err := h.API.Admin.PendingNotes(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	status, err := h.API.Admin.AIKeyStatus(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"page":          "admin",
		"pending_notes": pending,
		"ai_key":        status,
	})
}

func (h *AdminHandler) Notes(c echo.Context) error {
	page := pageParams(c)
	key := query.NewKey(resAdminNotes, map[string]string{
		"skip":  c.QueryParam("skip"),
		"limit": c.QueryParam("limit"),
	})
	return cachedJSON(c, h.Cache, "admin-notes", key, func(ctx context.Context) (any, error) {
		return h.API.Admin.AllNotes(ctx, page)
	})
}

func (h *AdminHandler) PYQs(c echo.Context) error {
	page := pageParams(c)
	key := query.NewKey(resAdminPYQs, map[string]string{
		"skip":  c.QueryParam("skip"),
		"limit": c.QueryParam("limit"),
	})
	return cachedJSON(c, h.Cache, "admin-pyqs", key, func(ctx context.Context) (any, error) {
		return h.API.Admin.AllPYQs(ctx, page)
	})
}

func (h *AdminHandler) Users(c echo.Context) error {
	page := pageParams(c)
	key := query.NewKey(resAdminUsers, map[string]string{
		"skip":  c.QueryParam("skip"),
		"limit": c.QueryParam("limit"),
	})
	return cachedJSON(c, h.Cache, "admin-users", key, func(ctx context.Context) (any, error) {
		return h.API.Admin.AllUsers(ctx, page)
	})
}

// UploadNote validates every required field before any bytes leave for the
// server; a form with a file attached but no class level is rejected here.
func (h *AdminHandler) UploadNote(c echo.Context) error {
	title := c.FormValue("title")
	classLevel := c.FormValue("class_level")
	subject := c.FormValue("subject")
	chapter := c.FormValue("chapter")
	if title == "" || classLevel == "" || subject == "" || chapter == "" {
		return invalid(c, "Title, class, subject and chapter are required")
	}

	file, closeFile, err := formUpload(c, "file")
	if err != nil || file == nil {
		return invalid(c, "Note file is required")
	}
	defer closeFile()

	thumbnail, closeThumb, err := formUpload(c, "thumbnail")
	if err != nil {
		return invalid(c, "invalid thumbnail")
	}
	if thumbnail != nil {
		defer closeThumb()
	}

	note, err := h.API.Admin.UploadNote(c.Request().Context(), gateway.NoteUpload{
		Title:       title,
		ClassLevel:  classLevel,
		Subject:     subject,
		Chapter:     chapter,
		Description: c.FormValue("description"),
		File:        *file,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		return fail(c, err)
	}

	h.Cache.Invalidate(resNotes, resAdminNotes)
	return c.JSON(http.StatusCreated, note)
}

func (h *AdminHandler) UploadPYQ(c echo.Context) error {
	title := c.FormValue("title")
	examType := c.FormValue("exam_type")
	yearStr := c.FormValue("year")
	if title == "" || examType == "" || yearStr == "" {
		return invalid(c, "Title, exam type and year are required")
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return invalid(c, "invalid year")
	}

	paper, closePaper, err := formUpload(c, "question_paper")
	if err != nil {
		return invalid(c, "invalid question paper")
	}
	if paper != nil {
		defer closePaper()
	}
	answerKey, closeKey, err := formUpload(c, "answer_key")
	if err != nil {
		return invalid(c, "invalid answer key")
	}
	if answerKey != nil {
		defer closeKey()
	}
	solution, closeSol, err := formUpload(c, "solution")
	if err != nil {
		return invalid(c, "invalid solution")
	}
	if solution != nil {
		defer closeSol()
	}

	pyq, err := h.API.Admin.UploadPYQ(c.Request().Context(), gateway.PYQUpload{
		Title:         title,
		ExamType:      examType,
		Year:          year,
		ClassLevel:    c.FormValue("class_level"),
		Subject:       c.FormValue("subject"),
		QuestionPaper: paper,
		AnswerKey:     answerKey,
		Solution:      solution,
	})
	if err != nil {
		return fail(c, err)
	}

	h.Cache.Invalidate(resPYQs, resAdminPYQs)
	return c.JSON(http.StatusCreated, pyq)
}

func (h *AdminHandler) ApproveNote(c echo.Context) error {
	return h.noteAction(c, h.API.Admin.ApproveNote)
}

func (h *AdminHandler) DeleteNote(c echo.Context) error {
	return h.noteAction(c, h.API.Admin.DeleteNote)
}

func (h *AdminHandler) ApprovePYQ(c echo.Context) error {
	return h.pyqAction(c, h.API.Admin.ApprovePYQ)
}

func (h *AdminHandler) DeletePYQ(c echo.Context) error {
	return h.pyqAction(c, h.API.Admin.DeletePYQ)
}

func (h *AdminHandler) ToggleUserActive(c echo.Context) error {
	return h.userAction(c, h.API.Admin.ToggleUserActive)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	return h.userAction(c, h.API.Admin.DeleteUser)
}

func (h *AdminHandler) MakeUserAdmin(c echo.Context) error {
	return h.userAction(c, h.API.Admin.MakeUserAdmin)
}

func (h *AdminHandler) UpdateAIKey(c echo.Context) error {
	apiKey := c.FormValue("api_key")
	if apiKey == "" {
		return invalid(c, "API key is required")
	}
	if err := h.API.Admin.UpdateAIKey(c.Request().Context(), apiKey, c.FormValue("provider")); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "AI key updated"})
}

func (h *AdminHandler) AIKeyStatus(c echo.Context) error {
	status, err := h.API.Admin.AIKeyStatus(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

func (h *AdminHandler) noteAction(c echo.Context, action func(context.Context, int) error) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return invalid(c, "invalid note id")
	}
	if err := action(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	h.Cache.Invalidate(resNotes, resAdminNotes)
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) pyqAction(c echo.Context, action func(context.Context, int) error) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return invalid(c, "invalid pyq id")
	}
	if err := action(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	h.Cache.Invalidate(resPYQs, resAdminPYQs)
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) userAction(c echo.Context, action func(context.Context, int) error) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return invalid(c, "invalid user id")
	}
	if err := action(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	h.Cache.Invalidate(resAdminUsers)
	return c.NoContent(http.StatusNoContent)
}

func pageParams(c echo.Context) gateway.Page {
	p := gateway.Page{}
	if v, err := strconv.Atoi(c.QueryParam("skip")); err == nil {
		p.Skip = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		p.Limit = v
	}
	return p
}

// formUpload pulls one uploaded file out of the multipart form. A missing
// optional file is (nil, nil, nil); the caller decides whether it was
// required.
func formUpload(c echo.Context, field string) (*gateway.FileUpload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (*gateway.FileUpload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &gateway.FileUpload{Name: fh.Filename, Reader: f}, func() { f.Close() }, nil
}
