// Package siteapi serves the public website: server-rendered pages built
// from page sections plus the resolved sections as JSON.
package siteapi

import (
	"context"
	"errors"
	"log"
	"net/http"

	"acc-portal/internal/api/respond"
	"acc-portal/internal/domain/contact"
	"acc-portal/internal/domain/site"
	"acc-portal/internal/domain/validation"
	"acc-portal/internal/events"
	"acc-portal/internal/render"
	"acc-portal/internal/store"
	"acc-portal/internal/theme"

	"github.com/gin-gonic/gin"
)

type ThemeSource interface {
	Get() theme.Config
}

type ContactSubmitter interface {
	Submit(ctx context.Context, m contact.Message) (contact.Message, error)
}

type Handler struct {
	src      Sources
	theme    ThemeSource
	contact  ContactSubmitter
	renderer *render.Renderer
	cache    *pageCache
}

func NewHandler(src Sources, th ThemeSource, contact ContactSubmitter, r *render.Renderer) *Handler {
	return &Handler{
		src:      src,
		theme:    th,
		contact:  contact,
		renderer: r,
		cache:    newPageCache(),
	}
}

// Invalidate drops every cached page. It is the content-changed
// subscriber of the serve process.
func (h *Handler) Invalidate(c events.Change) {
	h.cache.clear()
	log.Printf("Page cache cleared (%s %s)", c.Entity, c.Action)
}

// Page serves GET for one public page.
func (h *Handler) Page(page site.Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form *render.ContactForm
		if page == site.PageContact {
			form = &render.ContactForm{Sent: c.Query("sent") == "1"}
		}
		if form != nil && form.Sent {
			h.renderPage(c, http.StatusOK, page, form)
			return
		}
		key := page.Path()
		if b, ok := h.cache.get(key); ok {
			c.Data(http.StatusOK, "text/html; charset=utf-8", b)
			return
		}
		gen := h.cache.generation()
		b, ok := h.build(c, page, form)
		if !ok {
			return
		}
		h.cache.set(key, gen, b)
		c.Data(http.StatusOK, "text/html; charset=utf-8", b)
	}
}

// GET /blog/:slug
func (h *Handler) Article(c *gin.Context) {
	key := "/blog/" + c.Param("slug")
	if b, ok := h.cache.get(key); ok {
		c.Data(http.StatusOK, "text/html; charset=utf-8", b)
		return
	}

	gen := h.cache.generation()
	a, err := h.src.Articles.GetBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, store.ErrNotFound) || (err == nil && !a.IsPublished) {
		h.NotFound(c)
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}
	b, err := h.renderer.Article(h.theme.Get(), a)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.cache.set(key, gen, b)
	c.Data(http.StatusOK, "text/html; charset=utf-8", b)
}

// POST /contact/send takes the public contact form.
func (h *Handler) SendContact(c *gin.Context) {
	_, err := h.contact.Submit(c.Request.Context(), contact.Message{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Subject: c.PostForm("subject"),
		Message: c.PostForm("message"),
	})
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		h.renderPage(c, http.StatusBadRequest, site.PageContact, &render.ContactForm{Error: verr.Error()})
		return
	case err != nil:
		log.Printf("❌ Contact form failed: %v", err)
		h.renderPage(c, http.StatusInternalServerError, site.PageContact,
			&render.ContactForm{Error: "We could not send your message. Please try again later."})
		return
	}
	c.Redirect(http.StatusSeeOther, site.PageContact.Path()+"?sent=1")
}

// GET /pages/:page returns the resolved sections of a page as JSON.
func (h *Handler) PageJSON(c *gin.Context) {
	page, err := site.ParsePage(c.Param("page"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	views, err := h.src.views(c.Request.Context(), page)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":     page,
		"title":    page.Title(),
		"sections": views,
		"theme":    h.theme.Get(),
	})
}

func (h *Handler) NotFound(c *gin.Context) {
	b, err := h.renderer.NotFound(h.theme.Get())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", b)
}

func (h *Handler) renderPage(c *gin.Context, status int, page site.Page, form *render.ContactForm) {
	b, ok := h.build(c, page, form)
	if !ok {
		return
	}
	c.Data(status, "text/html; charset=utf-8", b)
}

func (h *Handler) build(c *gin.Context, page site.Page, form *render.ContactForm) ([]byte, bool) {
	views, err := h.src.views(c.Request.Context(), page)
	if err != nil {
		h.serverError(c, err)
		return nil, false
	}
	b, err := h.renderer.Page(h.theme.Get(), page, views, form)
	if err != nil {
		h.serverError(c, err)
		return nil, false
	}
	return b, true
}

func (h *Handler) serverError(c *gin.Context, err error) {
	log.Printf("❌ Rendering %s failed: %v", c.Request.URL.Path, err)
	c.String(http.StatusInternalServerError, "Something went wrong.")
}
