package web

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/schoolsharthi/webclient/internal/gateway"
)

type ExamHandler struct {
	API *gateway.Client
}

func (h *ExamHandler) List(c echo.Context) error {
	exams, err := h.API.Exam.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"page": "exams", "exams": exams})
}

func (h *ExamHandler) Create(c echo.Context) error {
	var req struct {
		Subject         string `json:"subject" form:"subject"`
		ClassLevel      string `json:"class_level" form:"class_level"`
		ExamType        string `json:"exam_type" form:"exam_type"`
		DurationMinutes int    `json:"duration_minutes" form:"duration_minutes"`
		TotalQuestions  int    `json:"total_questions" form:"total_questions"`
		Difficulty      string `json:"difficulty" form:"difficulty"`
	}
	if err := c.Bind(&req); err != nil {
		return invalid(c, "invalid request body")
	}

	exam, err := h.API.Exam.Create(c.Request().Context(), gateway.CreateExamRequest{
		Subject:         req.Subject,
		ClassLevel:      req.ClassLevel,
		ExamType:        req.ExamType,
		DurationMinutes: req.DurationMinutes,
		TotalQuestions:  req.TotalQuestions,
		Difficulty:      req.Difficulty,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, exam)
}

func (h *ExamHandler) Start(c echo.Context) error {
	id, err := examID(c)
	if err != nil {
		return invalid(c, "invalid exam id")
	}
	exam, err := h.API.Exam.Start(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, exam)
}

func (h *ExamHandler) Get(c echo.Context) error {
	id, err := examID(c)
	if err != nil {
		return invalid(c, "invalid exam id")
	}
	exam, err := h.API.Exam.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, exam)
}

func (h *ExamHandler) Questions(c echo.Context) error {
	id, err := examID(c)
	if err != nil {
		return invalid(c, "invalid exam id")
	}
	questions, err := h.API.Exam.Questions(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, questions)
}

func (h *ExamHandler) Answer(c echo.Context) error {
	id, err := examID(c)
	if err != nil {
		return invalid(c, "invalid exam id")
	}
	var req struct {
		QuestionID       int    `json:"question_id" form:"question_id"`
		SelectedAnswer   string `json:"selected_answer" form:"selected_answer"`
		TimeSpentSeconds int    `json:"time_spent_seconds" form:"time_spent_seconds"`
	}
	if err := c.Bind(&req); err != nil {
		return invalid(c, "invalid request body")
	}
	if req.QuestionID == 0 || req.SelectedAnswer == "" {
		return invalid(c, "Question and selected answer are required")
	}

	if err := h.API.Exam.SubmitAnswer(c.Request().Context(), id, gateway.SubmitAnswerRequest{
		QuestionID:       req.QuestionID,
		SelectedAnswer:   req.SelectedAnswer,
		TimeSpentSeconds: req.TimeSpentSeconds,
	}); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ExamHandler) Submit(c echo.Context) error {
	id, err := examID(c)
	if err != nil {
		return invalid(c, "invalid exam id")
	}
	result, err := h.API.Exam.Submit(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *ExamHandler) Result(c echo.Context) error {
	id, err := examID(c)
	if err != nil {
		return invalid(c, "invalid exam id")
	}
	result, err := h.API.Exam.Result(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *ExamHandler) Analysis(c echo.Context) error {
	id, err := examID(c)
	if err != nil {
		return invalid(c, "invalid exam id")
	}
	analysis, err := h.API.Exam.Analysis(c.Request().Context(), id, c.QueryParam("language"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, analysis)
}

func examID(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}
