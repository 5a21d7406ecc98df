package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/schoolsharthi/webclient/internal/gateway"
	"github.com/schoolsharthi/webclient/internal/query"
	"github.com/schoolsharthi/webclient/internal/subjects"
)

// Resource names used as cache-key prefixes and invalidation targets.
const (
	resNotes      = "notes"
	resPYQs       = "pyqs"
	resDoubts     = "doubts"
	resCareer     = "career"
	resAdminNotes = "admin_notes"
	resAdminPYQs  = "admin_pyqs"
	resAdminUsers = "admin_users"
)

type ContentHandler struct {
	API   *gateway.Client
	Cache *query.Cache
}

func (h *ContentHandler) Landing(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"page":     "landing",
		"platform": "SchoolSharthi",
		"features": []string{
			"handwritten notes", "previous year questions",
			"ai doubt solving", "career guidance", "exam mode",
		},
		"classes": subjects.Classes(),
	})
}

func (h *ContentHandler) Dashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"page": "dashboard",
		"user": CurrentUser(c),
	})
}

func (h *ContentHandler) Notes(c echo.Context) error {
	classLevel, subject := subjects.Normalize(c.QueryParam("class_level"), c.QueryParam("subject"))
	filters := gateway.NoteFilters{
		ClassLevel: classLevel,
		Subject:    subject,
		Chapter:    c.QueryParam("chapter"),
	}

	key := query.NewKey(resNotes, map[string]string{
		"class_level": filters.ClassLevel,
		"subject":     filters.Subject,
		"chapter":     filters.Chapter,
	})
	return h.cachedList(c, "notes", key, "No notes found", func(ctx context.Context) (any, error) {
		return h.API.Notes.List(ctx, filters)
	})
}

func (h *ContentHandler) DownloadNote(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return invalid(c, "invalid note id")
	}
	link, err := h.API.Notes.Download(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, link)
}

func (h *ContentHandler) PYQs(c echo.Context) error {
	year := 0
	if v := c.QueryParam("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return invalid(c, "invalid year")
		}
		year = y
	}
	classLevel, subject := subjects.Normalize(c.QueryParam("class_level"), c.QueryParam("subject"))
	// The PYQ API matches class and subject case-sensitively in upper case.
	filters := gateway.PYQFilters{
		ExamType:   c.QueryParam("exam_type"),
		ClassLevel: strings.ToUpper(classLevel),
		Subject:    strings.ToUpper(subject),
		Year:       year,
	}

	key := query.NewKey(resPYQs, map[string]string{
		"exam_type":   filters.ExamType,
		"class_level": filters.ClassLevel,
		"subject":     filters.Subject,
		"year":        c.QueryParam("year"),
	})
	return h.cachedList(c, "pyqs", key, "No PYQs found", func(ctx context.Context) (any, error) {
		return h.API.PYQs.List(ctx, filters)
	})
}

func (h *ContentHandler) DownloadPYQ(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return invalid(c, "invalid pyq id")
	}
	link, err := h.API.PYQs.Download(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, link)
}

func (h *ContentHandler) Search(c echo.Context) error {
	var req struct {
		Query      string `json:"query" form:"query"`
		SearchType string `json:"search_type" form:"search_type"`
		Limit      int    `json:"limit" form:"limit"`
	}
	if err := c.Bind(&req); err != nil {
		return invalid(c, "invalid request body")
	}
	if req.Query == "" {
		return invalid(c, "Search query is required")
	}

	result, err := h.API.Search.Search(c.Request().Context(), gateway.SearchRequest{
		Query:      req.Query,
		SearchType: req.SearchType,
		Limit:      req.Limit,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *ContentHandler) QuickSearch(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return invalid(c, "Search query is required")
	}
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	result, err := h.API.Search.Quick(c.Request().Context(), q, c.QueryParam("type"), limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// cachedList serves a filtered list view through the query cache. A result
// superseded by a newer filter key from the same client is never rendered;
// the request that raced ahead already owns the view, so this one ends with
// no content.
func (h *ContentHandler) cachedList(c echo.Context, view string, key query.Key, emptyMsg string, fetch func(context.Context) (any, error)) error {
	payload, err := h.Cache.Fetch(c.Request().Context(), clientView(c, view), key, fetch)
	if err != nil {
		if errors.Is(err, query.ErrSuperseded) {
			return c.NoContent(http.StatusNoContent)
		}
		return fail(c, err)
	}
	if string(payload) == "[]" || string(payload) == "null" {
		return c.JSON(http.StatusOK, echo.Map{"page": view, "items": []any{}, "message": emptyMsg})
	}
	return c.JSON(http.StatusOK, echo.Map{"page": view, "items": json.RawMessage(payload)})
}

// cachedJSON is cachedList without the empty-list message, for views that
// render whatever the cache holds.
func cachedJSON(c echo.Context, cache *query.Cache, view string, key query.Key, fetch func(context.Context) (any, error)) error {
	payload, err := cache.Fetch(c.Request().Context(), clientView(c, view), key, fetch)
	if err != nil {
		if errors.Is(err, query.ErrSuperseded) {
			return c.NoContent(http.StatusNoContent)
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"page": view, "items": json.RawMessage(payload)})
}
