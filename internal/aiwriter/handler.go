package aiwriter

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mahdi67436/cv-maker-web/internal/ats"
	"github.com/mahdi67436/cv-maker-web/internal/resumes"
	"github.com/mahdi67436/cv-maker-web/internal/shared/server/middleware"
	"github.com/mahdi67436/cv-maker-web/internal/shared/server/respond"
)

// ResumeAnalyzer runs the stored-resume analysis path, scoring a saved
// resume and persisting the result.
type ResumeAnalyzer interface {
	AnalyzeATS(ctx context.Context, userID, id, jobDescription string) (ats.Result, error)
}

type Handler struct {
	Svc *Service

	// Resumes serves ats-check requests that reference a saved resume.
	Resumes ResumeAnalyzer
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes wires the endpoints that work without a token.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup, limiter *middleware.RateLimiter) {
	rg.GET("/job-titles", middleware.RateLimit(limiter, "ai-job-titles", middleware.PerHour(50)), h.jobTitles)
}

// RegisterProtectedRoutes wires the authenticated writing endpoints.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup, limiter *middleware.RateLimiter) {
	rg.POST("/generate", middleware.RateLimit(limiter, "ai-generate", middleware.PerHour(10)), h.generate)
	rg.POST("/improve", middleware.RateLimit(limiter, "ai-improve", middleware.PerHour(20)), h.improve)
	rg.POST("/grammar", middleware.RateLimit(limiter, "ai-grammar", middleware.PerHour(30)), h.grammar)
	rg.POST("/suggestions", middleware.RateLimit(limiter, "ai-suggestions", middleware.PerHour(30)), h.suggestions)
	rg.POST("/keywords", middleware.RateLimit(limiter, "ai-keywords", middleware.PerHour(20)), h.keywords)
	rg.POST("/ats-check", middleware.RateLimit(limiter, "ai-ats-check", middleware.PerHour(20)), h.atsCheck)
}

type generateContext struct {
	Name            string   `json:"name"`
	ExperienceCount int      `json:"experienceCount"`
	Skills          []string `json:"skills"`
	Company         string   `json:"company"`
	Position        string   `json:"position"`
	Achievements    []string `json:"achievements"`
	JobTitle        string   `json:"jobTitle"`
	Industry        string   `json:"industry"`
}

type generateRequest struct {
	Section        string          `json:"section" binding:"required,oneof=summary experience skills"`
	Context        generateContext `json:"context"`
	JobDescription string          `json:"jobDescription" binding:"omitempty,max=20000"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid generation payload", err.Error())
		return
	}

	var result GenerateResult
	switch req.Section {
	case "summary":
		result = h.Svc.GenerateSummary(c.Request.Context(), SummaryInput{
			Name:            req.Context.Name,
			ExperienceCount: req.Context.ExperienceCount,
			Skills:          req.Context.Skills,
			JobDescription:  req.JobDescription,
		})
	case "experience":
		result = h.Svc.GenerateExperience(c.Request.Context(), req.Context.Company, req.Context.Position, req.Context.Achievements)
	case "skills":
		result = h.Svc.SuggestSkills(c.Request.Context(), req.Context.JobTitle, req.Context.Industry)
	}

	respond.OK(c, gin.H{
		"generatedContent": result.Content,
		"suggestions":      result.Suggestions,
	})
}

type improveRequest struct {
	Content        string `json:"content" binding:"required,max=20000"`
	Type           string `json:"type"`
	JobDescription string `json:"jobDescription" binding:"omitempty,max=20000"`
}

func (h *Handler) improve(c *gin.Context) {
	var req improveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid improvement payload", err.Error())
		return
	}
	contentType := req.Type
	if contentType == "" {
		contentType = "general"
	}

	result := h.Svc.Improve(c.Request.Context(), req.Content, contentType, req.JobDescription)
	respond.OK(c, gin.H{
		"improvedContent": result.Content,
		"changes":         result.Changes,
		"score":           result.Score,
	})
}

type grammarRequest struct {
	Content string `json:"content" binding:"required,max=20000"`
}

func (h *Handler) grammar(c *gin.Context) {
	var req grammarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid grammar payload", err.Error())
		return
	}

	result := h.Svc.CheckGrammar(req.Content)
	respond.OK(c, gin.H{
		"correctedContent": result.Corrected,
		"issues":           result.Issues,
		"score":            result.Score,
	})
}

type suggestionsRequest struct {
	Summary         string `json:"summary"`
	ExperienceCount int    `json:"experienceCount"`
	SkillCount      int    `json:"skillCount"`
	JobDescription  string `json:"jobDescription" binding:"omitempty,max=20000"`
}

type sectionSuggestion struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

func (h *Handler) suggestions(c *gin.Context) {
	var req suggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid suggestions payload", err.Error())
		return
	}

	buckets := map[string][]sectionSuggestion{
		"summary":    {},
		"experience": {},
		"skills":     {},
		"education":  {},
		"overall":    {},
	}
	if req.JobDescription != "" {
		buckets["overall"] = append(buckets["overall"], sectionSuggestion{
			Type: "job_match", Message: "Tailor your resume to the specific job description", Priority: "high",
		})
	}
	if req.Summary == "" {
		buckets["summary"] = append(buckets["summary"], sectionSuggestion{
			Type: "missing", Message: "Add a professional summary to stand out", Priority: "high",
		})
	} else if len(req.Summary) < 100 {
		buckets["summary"] = append(buckets["summary"], sectionSuggestion{
			Type: "length", Message: "Consider expanding your professional summary", Priority: "medium",
		})
	}
	if req.ExperienceCount == 0 {
		buckets["experience"] = append(buckets["experience"], sectionSuggestion{
			Type: "missing", Message: "Add work experience to showcase your background", Priority: "high",
		})
	}
	if req.SkillCount < 5 {
		buckets["skills"] = append(buckets["skills"], sectionSuggestion{
			Type: "count", Message: "Consider adding more relevant skills", Priority: "medium",
		})
	}

	respond.OK(c, gin.H{"suggestions": buckets})
}

type keywordResumePayload struct {
	Summary     string `json:"summary"`
	Experiences []struct {
		Description string `json:"description"`
	} `json:"experiences"`
	Education []struct {
		Description string `json:"description"`
	} `json:"education"`
	Skills []struct {
		Name string `json:"name"`
	} `json:"skills"`
}

type keywordsRequest struct {
	Resume         keywordResumePayload `json:"resume"`
	JobDescription string               `json:"jobDescription" binding:"omitempty,max=20000"`
}

func (h *Handler) keywords(c *gin.Context) {
	var req keywordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid keywords payload", err.Error())
		return
	}

	snap := ats.Snapshot{Summary: req.Resume.Summary}
	for _, exp := range req.Resume.Experiences {
		snap.Experiences = append(snap.Experiences, ats.Experience{Description: exp.Description})
	}
	for _, edu := range req.Resume.Education {
		snap.Education = append(snap.Education, ats.Education{Description: edu.Description})
	}
	for _, sk := range req.Resume.Skills {
		snap.Skills = append(snap.Skills, ats.Skill{Name: sk.Name})
	}

	respond.OK(c, ats.ExtractKeywords(snap, req.JobDescription))
}

func (h *Handler) jobTitles(c *gin.Context) {
	years, err := strconv.Atoi(c.DefaultQuery("experienceYears", "0"))
	if err != nil || years < 0 {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "experienceYears must be a non-negative integer", nil)
		return
	}
	titles := h.Svc.SuggestJobTitles(c.QueryArray("skills"), years)
	respond.OK(c, gin.H{"jobTitles": titles})
}

type atsResumePayload struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Summary     string `json:"summary"`
	Experiences []struct {
		JobTitle    string `json:"jobTitle"`
		Company     string `json:"company"`
		Description string `json:"description"`
	} `json:"experiences"`
	Education []struct {
		Degree      string `json:"degree"`
		Institution string `json:"institution"`
		Description string `json:"description"`
	} `json:"education"`
	Skills []struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Level    string `json:"level"`
	} `json:"skills"`
}

func (p atsResumePayload) snapshot() ats.Snapshot {
	snap := ats.Snapshot{
		FullName: p.FullName,
		Email:    p.Email,
		Phone:    p.Phone,
		City:     p.City,
		Country:  p.Country,
		Summary:  p.Summary,
	}
	for _, exp := range p.Experiences {
		snap.Experiences = append(snap.Experiences, ats.Experience{
			JobTitle: exp.JobTitle, Company: exp.Company, Description: exp.Description,
		})
	}
	for _, edu := range p.Education {
		snap.Education = append(snap.Education, ats.Education{
			Degree: edu.Degree, Institution: edu.Institution, Description: edu.Description,
		})
	}
	for _, sk := range p.Skills {
		snap.Skills = append(snap.Skills, ats.Skill{Name: sk.Name, Category: sk.Category, Level: sk.Level})
	}
	return snap
}

type atsCheckRequest struct {
	ResumeID       string           `json:"resumeId"`
	Resume         atsResumePayload `json:"resume"`
	JobDescription string           `json:"jobDescription" binding:"omitempty,max=20000"`
}

// atsCheck scores either a saved resume (persisting the result) or an
// inline payload that was never stored.
func (h *Handler) atsCheck(c *gin.Context) {
	var req atsCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid ats-check payload", err.Error())
		return
	}

	if req.ResumeID != "" {
		result, err := h.Resumes.AnalyzeATS(c.Request.Context(), middleware.UserIDFromContext(c), req.ResumeID, req.JobDescription)
		if err != nil {
			if errors.Is(err, resumes.ErrNotFound) {
				respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed", nil)
			return
		}
		respond.OK(c, result)
		return
	}

	respond.OK(c, ats.Analyze(req.Resume.snapshot(), req.JobDescription))
}
