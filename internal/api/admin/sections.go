package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"acc-portal/internal/domain/sections"
	"acc-portal/internal/domain/site"
	"acc-portal/internal/domain/validation"

	"github.com/gin-gonic/gin"
)

type sectionRow struct {
	sections.Section
	First, Last bool
}

type sectionsPage struct {
	Page  site.Page
	Pages []site.Page
	Rows  []sectionRow
}

type sectionForm struct {
	ID           string
	Title        string
	Subtitle     string
	Content      string
	Type         sections.Type
	Page         site.Page
	SourceType   sections.SourceType
	SourceConfig string

	Types   []sections.Type
	Pages   []site.Page
	Sources []sections.SourceType
}

func pageParam(c *gin.Context) site.Page {
	if p, err := site.ParsePage(c.Query("page")); err == nil {
		return p
	}
	return site.PageHome
}

func sectionsPath(p site.Page) string {
	return BasePath + "/sections?page=" + url.QueryEscape(string(p))
}

// GET /admin/sections?page=
func (h *Console) Sections(c *gin.Context) {
	page := pageParam(c)
	list, err := h.deps.Sections.ListPage(c.Request.Context(), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	rows := make([]sectionRow, len(list))
	for i, s := range list {
		rows[i] = sectionRow{Section: s, First: i == 0, Last: i == len(list)-1}
	}
	h.render(c, http.StatusOK, "sections", "Page builder", sectionsPage{Page: page, Pages: site.Pages, Rows: rows}, "")
}

func newSectionForm() sectionForm {
	return sectionForm{
		Types: sections.Types,
		Pages: site.Pages,
		Sources: []sections.SourceType{
			sections.SourceLatest, sections.SourceCategory, sections.SourceManual,
			sections.SourceProfiles, sections.SourceProjects,
		},
	}
}

// GET /admin/sections/new
func (h *Console) NewSection(c *gin.Context) {
	f := newSectionForm()
	f.Page = pageParam(c)
	f.Type = sections.TypeHero
	f.SourceConfig = "{}"
	h.render(c, http.StatusOK, "section_form", "New section", f, "")
}

func readSectionForm(c *gin.Context) sectionForm {
	f := newSectionForm()
	f.ID = c.Param("id")
	f.Title = c.PostForm("title")
	f.Subtitle = c.PostForm("subtitle")
	f.Content = c.PostForm("content")
	f.Type = sections.Type(c.PostForm("type"))
	f.Page = site.Page(c.PostForm("page"))
	f.SourceType = sections.SourceType(c.PostForm("sourceType"))
	f.SourceConfig = strings.TrimSpace(c.PostForm("sourceConfig"))
	return f
}

func (f sectionForm) rawConfig() (json.RawMessage, error) {
	if f.SourceConfig == "" {
		return nil, nil
	}
	if !json.Valid([]byte(f.SourceConfig)) {
		return nil, validation.New("sourceConfig", "must be valid JSON")
	}
	return json.RawMessage(f.SourceConfig), nil
}

// POST /admin/sections
func (h *Console) CreateSection(c *gin.Context) {
	f := readSectionForm(c)
	raw, err := f.rawConfig()
	if err == nil {
		_, err = h.deps.Sections.Create(c.Request.Context(), sections.Input{
			Title:        f.Title,
			Subtitle:     f.Subtitle,
			Content:      f.Content,
			Type:         f.Type,
			Page:         f.Page,
			SourceType:   f.SourceType,
			SourceConfig: raw,
		})
	}
	if err != nil {
		h.formError(c, "New section", f, err)
		return
	}
	redirect(c, sectionsPath(f.Page), "created")
}

// GET /admin/sections/:id/edit
func (h *Console) EditSection(c *gin.Context) {
	s, err := h.deps.Sections.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	cfg, err := sections.EncodeConfig(s.Config)
	if err != nil {
		h.fail(c, err)
		return
	}
	f := newSectionForm()
	f.ID = s.ID
	f.Title = s.Title
	f.Subtitle = s.Subtitle
	f.Content = s.Content
	f.Type = s.Type
	f.Page = s.Page
	f.SourceType = s.SourceType
	f.SourceConfig = string(cfg)
	h.render(c, http.StatusOK, "section_form", "Edit section", f, "")
}

// POST /admin/sections/:id
func (h *Console) UpdateSection(c *gin.Context) {
	f := readSectionForm(c)
	raw, err := f.rawConfig()
	if err == nil {
		p := sections.Patch{
			Title:        &f.Title,
			Subtitle:     &f.Subtitle,
			Content:      &f.Content,
			Type:         &f.Type,
			Page:         &f.Page,
			SourceConfig: raw,
		}
		if f.SourceType != "" {
			p.SourceType = &f.SourceType
		}
		_, err = h.deps.Sections.Update(c.Request.Context(), f.ID, p)
	}
	if err != nil {
		h.formError(c, "Edit section", f, err)
		return
	}
	redirect(c, sectionsPath(f.Page), "updated")
}

// POST /admin/sections/:id/move with direction=up|down
func (h *Console) MoveSection(c *gin.Context) {
	dir := 1
	if c.PostForm("direction") == "up" {
		dir = -1
	}
	moved, err := h.deps.Sections.Move(c.Request.Context(), c.Param("id"), dir)
	if err != nil {
		h.fail(c, err)
		return
	}
	page := pageParam(c)
	if len(moved) > 0 {
		page = moved[0].Page
	}
	redirect(c, sectionsPath(page), "moved")
}

// POST /admin/sections/:id/delete
func (h *Console) DeleteSection(c *gin.Context) {
	s, err := h.deps.Sections.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.deps.Sections.Delete(c.Request.Context(), s.ID); err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, sectionsPath(s.Page), "deleted")
}

func (h *Console) formError(c *gin.Context, title string, f sectionForm, err error) {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusBadRequest, "section_form", title, f, verr.Error())
}
