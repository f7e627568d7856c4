package handlers

import "github.com/gofiber/fiber/v2"

type Handlers struct {
	System         *SystemHandler
	User           *UserHandler
	Resume         *ResumeHandler
	JobDescription *JobDescriptionHandler
	Analysis       *AnalysisHandler
	Result         *ResultHandler
}

// Endpoints lists every route registered by Register, relative to its router.
var Endpoints = []string{
	"GET /health",
	"GET /metrics",
	"POST /users",
	"GET /users/:id",
	"GET /users/:id/resumes",
	"POST /resume/upload",
	"GET /resume/:id",
	"GET /resume/:id/analyses",
	"POST /job-description",
	"GET /job-description/:id",
	"GET /job-description/:id/similar",
	"POST /analyze",
	"GET /analysis/:id",
	"GET /analyses/recent",
}

func (h *Handlers) Register(r fiber.Router) {
	r.Get("/health", h.System.HandleHealth)
	r.Get("/metrics", h.System.HandleMetrics)

	r.Post("/users", h.User.HandleCreate)
	r.Get("/users/:id", h.User.HandleGet)
	r.Get("/users/:id/resumes", h.User.HandleListResumes)

	r.Post("/resume/upload", h.Resume.HandleUpload)
	r.Get("/resume/:id", h.Resume.HandleGet)
	r.Get("/resume/:id/analyses", h.Resume.HandleListAnalyses)

	r.Post("/job-description", h.JobDescription.HandleCreate)
	r.Get("/job-description/:id", h.JobDescription.HandleGet)
	r.Get("/job-description/:id/similar", h.JobDescription.HandleSimilar)

	r.Post("/analyze", h.Analysis.HandleAnalyze)
	r.Get("/analysis/:id", h.Result.HandleGetResult)
	r.Get("/analyses/recent", h.Result.HandleRecent)
}
