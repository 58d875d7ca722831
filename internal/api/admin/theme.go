package admin

import (
	"errors"
	"net/http"

	"acc-portal/internal/domain/validation"
	"acc-portal/internal/theme"

	"github.com/gin-gonic/gin"
)

// GET /admin/theme
func (h *Console) ThemeForm(c *gin.Context) {
	h.render(c, http.StatusOK, "theme", "Theme", gin.H{"Theme": h.deps.Theme.Get(), "CanEdit": isAdmin(c)}, "")
}

// POST /admin/theme
func (h *Console) SaveTheme(c *gin.Context) {
	if !isAdmin(c) {
		h.render(c, http.StatusForbidden, "theme", "Theme", gin.H{"Theme": h.deps.Theme.Get()}, "Only administrators can change the theme.")
		return
	}
	primary := c.PostForm("primaryColor")
	secondary := c.PostForm("secondaryColor")
	font := c.PostForm("fontFamily")
	radius := c.PostForm("borderRadius")
	p := theme.Patch{
		PrimaryColor:   &primary,
		SecondaryColor: &secondary,
		FontFamily:     &font,
		BorderRadius:   &radius,
	}

	if _, err := h.deps.ThemeEditor.Save(c.Request.Context(), p); err != nil {
		var verr *validation.Error
		if !errors.As(err, &verr) {
			h.fail(c, err)
			return
		}
		attempted := h.deps.Theme.Get().Merge(p)
		h.render(c, http.StatusBadRequest, "theme", "Theme", gin.H{"Theme": attempted, "CanEdit": true}, verr.Error())
		return
	}
	redirect(c, BasePath+"/theme", "theme")
}
