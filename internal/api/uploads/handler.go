package uploads

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"acc-portal/internal/api/respond"
	"acc-portal/internal/app/http/middleware"
	"acc-portal/internal/domain/media"
	"acc-portal/internal/services"
	"acc-portal/internal/storage"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Save(ctx context.Context, in services.UploadInput) (media.Upload, error)
	Open(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error)
	MaxBytes() int64
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// POST /uploads (multipart field "file")
func (h *Handler) Upload(c *gin.Context) {
	if max := h.svc.MaxBytes(); max > 0 {
		// Room for the multipart envelope on top of the file itself.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max+1<<20)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		respond.BadRequest(c, "Missing file")
		return
	}
	f, err := fh.Open()
	if err != nil {
		respond.BadRequest(c, "Unreadable file")
		return
	}
	defer f.Close()

	in := services.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
		UploadedBy:  c.GetString(middleware.KeyUserID),
	}
	u, err := h.svc.Save(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": u.URL, "upload": u})
}

// GET /uploads/*key
func (h *Handler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	rc, info, err := h.svc.Open(c.Request.Context(), key)
	if err != nil {
		respond.Error(c, err)
		return
	}
	defer rc.Close()

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Header("X-Content-Type-Options", "nosniff")
	if info.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	ct := info.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	c.Header("Content-Type", ct)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		_ = c.Error(err)
	}
}
