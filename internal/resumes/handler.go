package resumes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumecraft/internal/shared/server/middleware"
	"resumecraft/internal/shared/server/respond"
)

const maxBodySize = 2 << 20 // 2MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.create)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.update)
	rg.DELETE("/resumes/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}

	resume, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req.toInput())
	if err != nil {
		writeError(c, err, "failed to create resume")
		return
	}
	c.Set("resumeId", resume.ID)
	respond.Created(c, toRecord(resume))
}

func (h *Handler) update(c *gin.Context) {
	resumeID := strings.TrimSpace(c.Param("id"))
	c.Set("resumeId", resumeID)
	req, ok := bindRequest(c)
	if !ok {
		return
	}

	resume, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), resumeID, req.toInput())
	if err != nil {
		writeError(c, err, "failed to update resume")
		return
	}
	respond.OK(c, toRecord(resume))
}

func (h *Handler) get(c *gin.Context) {
	resumeID := strings.TrimSpace(c.Param("id"))
	c.Set("resumeId", resumeID)

	resume, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), resumeID)
	if err != nil {
		writeError(c, err, "failed to fetch resume")
		return
	}
	respond.OK(c, toRecord(resume))
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to list resumes")
		return
	}
	respond.OK(c, toSummaries(list))
}

func (h *Handler) delete(c *gin.Context) {
	resumeID := strings.TrimSpace(c.Param("id"))
	c.Set("resumeId", resumeID)

	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), resumeID); err != nil {
		writeError(c, err, "failed to delete resume")
		return
	}
	respond.Message(c, "Resume deleted successfully")
}

func bindRequest(c *gin.Context) (Request, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return Request{}, false
	}
	return req, true
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": "), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Resume not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
