package content

import (
	"context"
	"net/http"

	"acc-portal/internal/api/respond"
	domain "acc-portal/internal/domain/content"

	"github.com/gin-gonic/gin"
)

type ArticleService interface {
	Service[domain.Article, domain.ArticlePatch]
	GetBySlug(ctx context.Context, slug string) (domain.Article, error)
}

type ArticleHandler struct {
	*CRUD[domain.Article, domain.ArticlePatch]
	svc ArticleService
}

func NewArticleHandler(svc ArticleService) *ArticleHandler {
	return &ArticleHandler{CRUD: NewCRUD[domain.Article, domain.ArticlePatch](svc), svc: svc}
}

// GET /articles/slug/:slug
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	a, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
