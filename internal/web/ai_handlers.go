package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolsharthi/webclient/internal/gateway"
	"github.com/schoolsharthi/webclient/internal/query"
)

type AIHandler struct {
	API   *gateway.Client
	Cache *query.Cache
}

// DoubtPage lists the student's past doubts. The list is cached per user;
// asking a new doubt invalidates it.
func (h *AIHandler) DoubtPage(c echo.Context) error {
	key := query.NewKey(resDoubts, map[string]string{"user": userKey(c)})
	payload, err := h.Cache.Fetch(c.Request().Context(), clientView(c, "ai-doubt"), key, func(ctx context.Context) (any, error) {
		return h.API.AI.Doubts(ctx)
	})
	if err != nil {
		if errors.Is(err, query.ErrSuperseded) {
			return c.NoContent(http.StatusNoContent)
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"page": "ai-doubt", "doubts": json.RawMessage(payload)})
}

func (h *AIHandler) AskDoubt(c echo.Context) error {
	var req struct {
		Question   string `json:"question" form:"question"`
		Subject    string `json:"subject" form:"subject"`
		ClassLevel string `json:"class_level" form:"class_level"`
		Chapter    string `json:"chapter" form:"chapter"`
	}
	if err := c.Bind(&req); err != nil {
		return invalid(c, "invalid request body")
	}
	if req.Question == "" {
		return invalid(c, "Question is required")
	}

	doubt, err := h.API.AI.AskDoubt(c.Request().Context(), gateway.DoubtRequest{
		Question:   req.Question,
		Subject:    req.Subject,
		ClassLevel: req.ClassLevel,
		Chapter:    req.Chapter,
	})
	if err != nil {
		return fail(c, err)
	}

	h.Cache.Invalidate(resDoubts)
	return c.JSON(http.StatusOK, doubt)
}

// AssistantPage aggregates the study tools: performance breakdown plus weak
// topic summary, fetched fresh on every visit.
func (h *AIHandler) AssistantPage(c echo.Context) error {
	perf, err := h.API.Learning.Performance(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	summary, err := h.API.Learning.WeakTopicsSummary(c.Request().Context(), c.QueryParam("language"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"page":        "ai-assistant",
		"performance": perf,
		"weak_topics": summary,
	})
}

func (h *AIHandler) Recommendations(c echo.Context) error {
	recs, err := h.API.Learning.Recommendations(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *AIHandler) ImportantQuestions(c echo.Context) error {
	var req struct {
		Subject    string `json:"subject" form:"subject"`
		ClassLevel string `json:"class_level" form:"class_level"`
		Chapter    string `json:"chapter" form:"chapter"`
		Count      int    `json:"count" form:"count"`
	}
	if err := c.Bind(&req); err != nil {
		return invalid(c, "invalid request body")
	}
	if req.Subject == "" || req.ClassLevel == "" || req.Chapter == "" {
		return invalid(c, "Subject, class and chapter are required")
	}

	out, err := h.API.AI.ImportantQuestions(c.Request().Context(), gateway.ImportantQuestionsRequest{
		Subject:    req.Subject,
		ClassLevel: req.ClassLevel,
		Chapter:    req.Chapter,
		Count:      req.Count,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AIHandler) PYQPatterns(c echo.Context) error {
	var req struct {
		ExamType  string `json:"exam_type" form:"exam_type"`
		Subject   string `json:"subject" form:"subject"`
		YearRange string `json:"year_range" form:"year_range"`
	}
	if err := c.Bind(&req); err != nil {
		return invalid(c, "invalid request body")
	}
	if req.ExamType == "" {
		return invalid(c, "Exam type is required")
	}

	out, err := h.API.AI.PYQPatterns(c.Request().Context(), gateway.PYQPatternsRequest{
		ExamType:  req.ExamType,
		Subject:   req.Subject,
		YearRange: req.YearRange,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AIHandler) StepByStep(c echo.Context) error {
	var req struct {
		Problem string `json:"problem" form:"problem"`
		Subject string `json:"subject" form:"subject"`
	}
	if err := c.Bind(&req); err != nil {
		return invalid(c, "invalid request body")
	}
	if req.Problem == "" {
		return invalid(c, "Problem statement is required")
	}

	out, err := h.API.AI.StepByStep(c.Request().Context(), gateway.StepByStepRequest{
		Problem: req.Problem,
		Subject: req.Subject,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AIHandler) GenerateRevision(c echo.Context) error {
	var req struct {
		Query      string `json:"query" form:"query"`
		Subject    string `json:"subject" form:"subject"`
		ClassLevel string `json:"class_level" form:"class_level"`
		Language   string `json:"language" form:"language"`
	}
	if err := c.Bind(&req); err != nil {
		return invalid(c, "invalid request body")
	}
	if req.Query == "" {
		return invalid(c, "Revision query is required")
	}

	pack, err := h.API.Revision.Generate(c.Request().Context(), gateway.RevisionRequest{
		Query:      req.Query,
		Subject:    req.Subject,
		ClassLevel: req.ClassLevel,
		Language:   req.Language,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, pack)
}

func (h *AIHandler) QuickRevision(c echo.Context) error {
	subject := c.QueryParam("subject")
	if subject == "" {
		return invalid(c, "Subject is required")
	}
	pack, err := h.API.Revision.Quick(c.Request().Context(), subject, c.QueryParam("class_level"), c.QueryParam("language"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, pack)
}

// CareerPage shows the guidance types next to the student's past queries.
func (h *AIHandler) CareerPage(c echo.Context) error {
	types, err := h.API.Career.GuidanceTypes(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	key := query.NewKey(resCareer, map[string]string{"user": userKey(c)})
	payload, err := h.Cache.Fetch(c.Request().Context(), clientView(c, "career"), key, func(ctx context.Context) (any, error) {
		return h.API.Career.Queries(ctx)
	})
	if err != nil {
		if errors.Is(err, query.ErrSuperseded) {
			return c.NoContent(http.StatusNoContent)
		}
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"page":           "career",
		"guidance_types": types.GuidanceTypes,
		"queries":        json.RawMessage(payload),
	})
}

func (h *AIHandler) AskCareerQuery(c echo.Context) error {
	var req struct {
		Query        string `json:"query" form:"query"`
		GuidanceType string `json:"guidance_type" form:"guidance_type"`
	}
	if err := c.Bind(&req); err != nil {
		return invalid(c, "invalid request body")
	}
	if req.Query == "" {
		return invalid(c, "Career query is required")
	}

	out, err := h.API.Career.AskQuery(c.Request().Context(), gateway.CareerQueryRequest{
		Query:        req.Query,
		GuidanceType: req.GuidanceType,
	})
	if err != nil {
		return fail(c, err)
	}

	h.Cache.Invalidate(resCareer)
	return c.JSON(http.StatusOK, out)
}
