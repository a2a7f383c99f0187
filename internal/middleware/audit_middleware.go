package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/repositories"
)

// AuditMiddleware records successful write requests in the audit trail
type AuditMiddleware struct {
	auditRepo *repositories.AuditLogRepository
}

// NewAuditMiddleware creates a new AuditMiddleware
func NewAuditMiddleware(auditRepo *repositories.AuditLogRepository) *AuditMiddleware {
	return &AuditMiddleware{auditRepo: auditRepo}
}

var auditActions = map[string]models.AuditAction{
	http.MethodPost:   models.AuditCreate,
	http.MethodPut:    models.AuditUpdate,
	http.MethodPatch:  models.AuditUpdate,
	http.MethodDelete: models.AuditDelete,
}

// Audit appends one audit record per successful mutating request.
// Audit failures never affect the response.
func (m *AuditMiddleware) Audit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		action, ok := auditActions[c.Request.Method]
		if !ok || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		entry := &models.AuditLog{
			Action:    action,
			Entity:    auditEntity(c),
			EntityID:  auditEntityID(c),
			Details:   c.Request.Method + " " + c.Request.URL.Path,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		if userID, exists := c.Get(ContextUserID); exists {
			if id, ok := userID.(int64); ok {
				entry.UserID = &id
			}
		}

		m.auditRepo.Insert(c.Request.Context(), entry)
	}
}

// auditEntity derives the entity name from the first path segment after
// the API prefix, e.g. /api/v1/credits/7 -> credits
func auditEntity(c *gin.Context) string {
	path := strings.TrimPrefix(c.FullPath(), "/api/v1/")
	if idx := strings.IndexByte(path, '/'); idx > 0 {
		path = path[:idx]
	}
	if path == "" {
		return "unknown"
	}
	return path
}

func auditEntityID(c *gin.Context) *int64 {
	for _, name := range []string{"id", "studentId", "eventId", "participationId"} {
		if raw := c.Param(name); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				return &id
			}
		}
	}
	return nil
}
