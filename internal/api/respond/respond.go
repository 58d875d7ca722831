// Package respond maps service errors onto JSON error responses.
package respond

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"acc-portal/internal/domain/validation"
	"acc-portal/internal/services"
	"acc-portal/internal/store"

	"github.com/gin-gonic/gin"
)

// Error writes the response for err and aborts the request.
func Error(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": notFoundMessage(c)})
	case errors.Is(err, store.ErrConflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Already exists"})
	case errors.Is(err, store.ErrInvalidReference):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Referenced record does not exist"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrInvalidWebhook):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
	case errors.Is(err, services.ErrNotConfigured):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Not configured"})
	default:
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// notFoundMessage names the missing record after the route, e.g.
// `Article with ID "42" not found` for /articles/:id.
func notFoundMessage(c *gin.Context) string {
	var entity string
	segments := strings.Split(c.FullPath(), "/")
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") && !strings.HasPrefix(seg, "*") {
			continue
		}
		param := seg[1:]
		j := i - 1
		if j > 0 && segments[j] == param {
			j--
		}
		if j >= 0 {
			entity = singular(segments[j])
		}
		value := strings.TrimPrefix(c.Param(param), "/")
		if entity == "" || value == "" {
			break
		}
		return fmt.Sprintf("%s with %s %q not found", entity, paramLabel(param), value)
	}
	if entity != "" {
		return entity + " not found"
	}
	return "Not found"
}

func singular(seg string) string {
	if seg == "" {
		return ""
	}
	switch {
	case strings.HasSuffix(seg, "ies"):
		seg = strings.TrimSuffix(seg, "ies") + "y"
	case strings.HasSuffix(seg, "s"):
		seg = strings.TrimSuffix(seg, "s")
	}
	return strings.ToUpper(seg[:1]) + seg[1:]
}

func paramLabel(param string) string {
	if param == "id" {
		return "ID"
	}
	return param
}

// BadRequest reports an unreadable request body.
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

// Deleted is the body of every successful delete.
func Deleted(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
