package web

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/schoolsharthi/webclient/internal/gateway"
	"github.com/schoolsharthi/webclient/internal/metrics"
	"github.com/schoolsharthi/webclient/internal/query"
	"github.com/schoolsharthi/webclient/internal/session"
)

type Deps struct {
	API      *gateway.Client
	Sessions *session.Store
	Cache    *query.Cache
	Metrics  *metrics.Collector
	Logger   *slog.Logger
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })
	if d.Metrics != nil {
		e.GET("/metrics", d.Metrics.Handler())
	}

	sessions := &SessionMiddleware{Sessions: d.Sessions, Logger: d.Logger}
	e.Use(sessions.Load)

	auth := &AuthHandler{Sessions: d.Sessions, Logger: d.Logger}
	content := &ContentHandler{API: d.API, Cache: d.Cache}
	ai := &AIHandler{API: d.API, Cache: d.Cache}
	exam := &ExamHandler{API: d.API}
	adm := &AdminHandler{API: d.API, Cache: d.Cache}

	e.GET("/", content.Landing)
	e.GET("/login", auth.LoginPage)
	e.POST("/login", auth.Login)
	e.GET("/register", auth.RegisterPage)
	e.POST("/register", auth.Register)
	e.POST("/logout", auth.Logout)

	e.GET("/notes", content.Notes)
	e.GET("/notes/:id/download", content.DownloadNote, RequireSession)
	e.GET("/pyqs", content.PYQs)
	e.GET("/pyqs/:id/download", content.DownloadPYQ, RequireSession)
	e.POST("/search", content.Search)
	e.GET("/search/quick", content.QuickSearch)

	e.GET("/dashboard", content.Dashboard, RequireSession)

	doubt := e.Group("/ai-doubt", RequireSession)
	doubt.GET("", ai.DoubtPage)
	doubt.POST("", ai.AskDoubt)

	assistant := e.Group("/ai-assistant", RequireSession)
	assistant.GET("", ai.AssistantPage)
	assistant.GET("/recommendations", ai.Recommendations)
	assistant.POST("/important-questions", ai.ImportantQuestions)
	assistant.POST("/pyq-patterns", ai.PYQPatterns)
	assistant.POST("/step-by-step", ai.StepByStep)
	assistant.POST("/revision", ai.GenerateRevision)
	assistant.GET("/revision/quick", ai.QuickRevision)

	career := e.Group("/career", RequireSession)
	career.GET("", ai.CareerPage)
	career.POST("", ai.AskCareerQuery)

	exams := e.Group("/exams", RequireSession)
	exams.GET("", exam.List)
	exams.POST("", exam.Create)
	exams.GET("/:id", exam.Get)
	exams.POST("/:id/start", exam.Start)
	exams.GET("/:id/questions", exam.Questions)
	exams.POST("/:id/answer", exam.Answer)
	exams.POST("/:id/submit", exam.Submit)
	exams.GET("/:id/result", exam.Result)
	exams.GET("/:id/analysis", exam.Analysis)

	admin := e.Group("/admin", RequireAdmin)
	admin.GET("", adm.Page)
	admin.GET("/notes", adm.Notes)
	admin.POST("/notes/upload", adm.UploadNote)
	admin.POST("/notes/:id/approve", adm.ApproveNote)
	admin.DELETE("/notes/:id", adm.DeleteNote)
	admin.GET("/pyqs", adm.PYQs)
	admin.POST("/pyqs/upload", adm.UploadPYQ)
	admin.POST("/pyqs/:id/approve", adm.ApprovePYQ)
	admin.DELETE("/pyqs/:id", adm.DeletePYQ)
	admin.GET("/users", adm.Users)
	admin.POST("/users/:id/toggle-active", adm.ToggleUserActive)
	admin.POST("/users/:id/make-admin", adm.MakeUserAdmin)
	admin.DELETE("/users/:id", adm.DeleteUser)
	admin.POST("/settings/ai-key", adm.UpdateAIKey)
	admin.GET("/settings/ai-key", adm.AIKeyStatus)
}
