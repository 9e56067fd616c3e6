package resumes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mahdi67436/cv-maker-web/internal/shared/server/middleware"
	"github.com/mahdi67436/cv-maker-web/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes wires the share-link endpoint, which needs no token.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/shared/:token", h.getShared)
}

// RegisterProtectedRoutes wires the owner-facing resume endpoints.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup, limiter *middleware.RateLimiter) {
	rg.GET("", middleware.RateLimit(limiter, "resumes-list", middleware.PerHour(100)), h.list)
	rg.POST("", middleware.RateLimit(limiter, "resumes-create", middleware.PerHour(50)), h.create)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", middleware.RateLimit(limiter, "resumes-delete", middleware.PerHour(20)), h.remove)
	rg.POST("/:id/duplicate", h.duplicate)
	rg.POST("/:id/share", h.toggleShare)
	rg.POST("/:id/archive", h.archive)
	rg.POST("/:id/unarchive", h.unarchive)
	rg.POST("/:id/ats-check", middleware.RateLimit(limiter, "ats-check", middleware.PerHour(20)), h.atsCheck)

	rg.POST("/:id/experiences", h.addExperience)
	rg.PUT("/:id/experiences/:entryId", h.updateExperience)
	rg.DELETE("/:id/experiences/:entryId", h.deleteEntry(SectionExperience))

	rg.POST("/:id/education", h.addEducation)
	rg.PUT("/:id/education/:entryId", h.updateEducation)
	rg.DELETE("/:id/education/:entryId", h.deleteEntry(SectionEducation))

	rg.POST("/:id/skills", h.addSkill)
	rg.PUT("/:id/skills/:entryId", h.updateSkill)
	rg.DELETE("/:id/skills/:entryId", h.deleteEntry(SectionSkills))

	rg.POST("/:id/projects", h.addProject)
	rg.PUT("/:id/projects/:entryId", h.updateProject)
	rg.DELETE("/:id/projects/:entryId", h.deleteEntry(SectionProjects))

	rg.POST("/:id/certifications", h.addCertification)
	rg.PUT("/:id/certifications/:entryId", h.updateCertification)
	rg.DELETE("/:id/certifications/:entryId", h.deleteEntry(SectionCertification))
}

func (h *Handler) list(c *gin.Context) {
	includeArchived := c.Query("includeArchived") == "true"
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), includeArchived)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}
	respond.OK(c, gin.H{"resumes": toViews(items), "count": len(items)})
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid resume payload", err.Error())
		return
	}

	resume, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), CreateInput{
		Title:    req.Title,
		Template: req.Template,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		City:     req.City,
		Country:  req.Country,
		Website:  req.Website,
		LinkedIn: req.LinkedIn,
		GitHub:   req.GitHub,
		Summary:  req.Summary,
	})
	if err != nil {
		if errors.Is(err, ErrUnknownTemplate) {
			respond.Error(c, http.StatusBadRequest, "unknown_template", "unknown template", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create resume", nil)
		return
	}
	respond.Created(c, toView(resume))
}

func (h *Handler) get(c *gin.Context) {
	resume, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to load resume")
		return
	}
	respond.OK(c, toView(resume))
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid resume payload", err.Error())
		return
	}

	resume, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), UpdateInput{
		Title:    req.Title,
		Template: req.Template,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		City:     req.City,
		Country:  req.Country,
		Website:  req.Website,
		LinkedIn: req.LinkedIn,
		GitHub:   req.GitHub,
		Summary:  req.Summary,
	})
	if err != nil {
		if errors.Is(err, ErrUnknownTemplate) {
			respond.Error(c, http.StatusBadRequest, "unknown_template", "unknown template", nil)
			return
		}
		h.respondError(c, err, "failed to update resume")
		return
	}
	respond.OK(c, toView(resume))
}

func (h *Handler) remove(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to delete resume")
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

func (h *Handler) duplicate(c *gin.Context) {
	resume, err := h.Svc.Duplicate(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to duplicate resume")
		return
	}
	respond.Created(c, toView(resume))
}

func (h *Handler) toggleShare(c *gin.Context) {
	resume, err := h.Svc.ToggleShare(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to update sharing")
		return
	}
	view := toView(resume)
	payload := gin.H{"isPublic": resume.IsPublic, "shareUrl": nil}
	if resume.IsPublic {
		payload["shareUrl"] = view.ShareURL
		payload["shareToken"] = resume.ShareToken
	}
	respond.OK(c, payload)
}

func (h *Handler) archive(c *gin.Context) {
	if err := h.Svc.Archive(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		h.respondError(c, err, "failed to archive resume")
		return
	}
	respond.OK(c, gin.H{"archived": true})
}

func (h *Handler) unarchive(c *gin.Context) {
	if err := h.Svc.Unarchive(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		h.respondError(c, err, "failed to unarchive resume")
		return
	}
	respond.OK(c, gin.H{"archived": false})
}

func (h *Handler) getShared(c *gin.Context) {
	resume, err := h.Svc.GetShared(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.respondError(c, err, "failed to load shared resume")
		return
	}
	respond.OK(c, toSharedView(resume))
}

func (h *Handler) atsCheck(c *gin.Context) {
	var req atsCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid analysis payload", err.Error())
		return
	}

	result, err := h.Svc.AnalyzeATS(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), req.JobDescription)
	if err != nil {
		h.respondError(c, err, "failed to analyze resume")
		return
	}
	respond.OK(c, result)
}

func (h *Handler) addExperience(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid experience payload", err.Error())
		return
	}
	entry, err := h.Svc.AddExperience(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), Experience{
		JobTitle:    req.JobTitle,
		Company:     req.Company,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsCurrent:   req.IsCurrent,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		h.respondError(c, err, "failed to add experience")
		return
	}
	respond.Created(c, entry)
}

func (h *Handler) updateExperience(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid experience payload", err.Error())
		return
	}
	entry, err := h.Svc.UpdateExperience(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), Experience{
		ID:          c.Param("entryId"),
		JobTitle:    req.JobTitle,
		Company:     req.Company,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsCurrent:   req.IsCurrent,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		h.respondError(c, err, "failed to update experience")
		return
	}
	respond.OK(c, entry)
}

func (h *Handler) addEducation(c *gin.Context) {
	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid education payload", err.Error())
		return
	}
	entry, err := h.Svc.AddEducation(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), Education{
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		Institution:  req.Institution,
		Location:     req.Location,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		GPA:          req.GPA,
		Description:  req.Description,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		h.respondError(c, err, "failed to add education")
		return
	}
	respond.Created(c, entry)
}

func (h *Handler) updateEducation(c *gin.Context) {
	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid education payload", err.Error())
		return
	}
	entry, err := h.Svc.UpdateEducation(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), Education{
		ID:           c.Param("entryId"),
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		Institution:  req.Institution,
		Location:     req.Location,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		GPA:          req.GPA,
		Description:  req.Description,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		h.respondError(c, err, "failed to update education")
		return
	}
	respond.OK(c, entry)
}

func (h *Handler) addSkill(c *gin.Context) {
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid skill payload", err.Error())
		return
	}
	entry, err := h.Svc.AddSkill(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), Skill{
		Name:      req.Name,
		Category:  req.Category,
		Level:     req.Level,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		h.respondError(c, err, "failed to add skill")
		return
	}
	respond.Created(c, entry)
}

func (h *Handler) updateSkill(c *gin.Context) {
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid skill payload", err.Error())
		return
	}
	entry, err := h.Svc.UpdateSkill(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), Skill{
		ID:        c.Param("entryId"),
		Name:      req.Name,
		Category:  req.Category,
		Level:     req.Level,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		h.respondError(c, err, "failed to update skill")
		return
	}
	respond.OK(c, entry)
}

func (h *Handler) addProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid project payload", err.Error())
		return
	}
	entry, err := h.Svc.AddProject(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), Project{
		Name:         req.Name,
		Description:  req.Description,
		URL:          req.URL,
		Technologies: req.Technologies,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		h.respondError(c, err, "failed to add project")
		return
	}
	respond.Created(c, entry)
}

func (h *Handler) updateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid project payload", err.Error())
		return
	}
	entry, err := h.Svc.UpdateProject(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), Project{
		ID:           c.Param("entryId"),
		Name:         req.Name,
		Description:  req.Description,
		URL:          req.URL,
		Technologies: req.Technologies,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		h.respondError(c, err, "failed to update project")
		return
	}
	respond.OK(c, entry)
}

func (h *Handler) addCertification(c *gin.Context) {
	var req certificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid certification payload", err.Error())
		return
	}
	entry, err := h.Svc.AddCertification(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), Certification{
		Name:          req.Name,
		Issuer:        req.Issuer,
		IssueDate:     req.IssueDate,
		ExpiryDate:    req.ExpiryDate,
		CredentialID:  req.CredentialID,
		CredentialURL: req.CredentialURL,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		h.respondError(c, err, "failed to add certification")
		return
	}
	respond.Created(c, entry)
}

func (h *Handler) updateCertification(c *gin.Context) {
	var req certificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid certification payload", err.Error())
		return
	}
	entry, err := h.Svc.UpdateCertification(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), Certification{
		ID:            c.Param("entryId"),
		Name:          req.Name,
		Issuer:        req.Issuer,
		IssueDate:     req.IssueDate,
		ExpiryDate:    req.ExpiryDate,
		CredentialID:  req.CredentialID,
		CredentialURL: req.CredentialURL,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		h.respondError(c, err, "failed to update certification")
		return
	}
	respond.OK(c, entry)
}

func (h *Handler) deleteEntry(section Section) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := h.Svc.DeleteSectionEntry(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), section, c.Param("entryId"))
		if err != nil {
			h.respondError(c, err, "failed to delete entry")
			return
		}
		respond.OK(c, gin.H{"deleted": true})
	}
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
}
