package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"acc-portal/internal/domain/content"
	"acc-portal/internal/domain/site"
	"acc-portal/internal/theme"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

const siteName = "African Cybersecurity Consortium"

type NavLink struct {
	Title  string
	Path   string
	Active bool
}

// ContactForm is the state of the contact form shown on the contact page.
type ContactForm struct {
	Sent  bool
	Error string
}

// Layout is the data shared by every page's header and footer.
type Layout struct {
	SiteName string
	Title    string
	Theme    template.CSS
	Nav      []NavLink
	Year     int
}

type pageData struct {
	Layout
	Page    site.Page
	Views   []View
	Contact *ContactForm
}

type articleData struct {
	Layout
	Article content.Article
	Body    template.HTML
}

type Renderer struct {
	tmpl   *template.Template
	md     goldmark.Markdown
	policy *bluemonday.Policy
	now    func() time.Time
}

func New() (*Renderer, error) {
	tmpl, err := template.New("site").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse site templates: %w", err)
	}
	return &Renderer{
		tmpl: tmpl,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: bluemonday.UGCPolicy(),
		now:    time.Now,
	}, nil
}

func (r *Renderer) layout(th theme.Config, title string, active string) Layout {
	nav := make([]NavLink, 0, len(site.Pages))
	for _, p := range site.Pages {
		nav = append(nav, NavLink{Title: p.Title(), Path: p.Path(), Active: p.Path() == active})
	}
	if err := th.Validate(); err != nil {
		th = theme.Default()
	}
	return Layout{
		SiteName: siteName,
		Title:    title,
		Theme:    th.CSSVariables(),
		Nav:      nav,
		Year:     r.now().Year(),
	}
}

// Page renders one public page from its resolved sections. contact is
// shown below the sections when not nil.
func (r *Renderer) Page(th theme.Config, page site.Page, views []View, contact *ContactForm) ([]byte, error) {
	data := pageData{
		Layout:  r.layout(th, page.Title(), page.Path()),
		Page:    page,
		Views:   views,
		Contact: contact,
	}
	return r.execute("page", data)
}

// Article renders a single article page.
func (r *Renderer) Article(th theme.Config, a content.Article) ([]byte, error) {
	body, err := r.Body(a)
	if err != nil {
		return nil, err
	}
	data := articleData{
		Layout:  r.layout(th, a.Title, site.PageBlog.Path()),
		Article: a,
		Body:    body,
	}
	return r.execute("article", data)
}

func (r *Renderer) NotFound(th theme.Config) ([]byte, error) {
	return r.execute("not-found", r.layout(th, "Page not found", ""))
}

// Body converts the article content to sanitised HTML. Markdown is
// converted first; every format goes through the UGC policy.
func (r *Renderer) Body(a content.Article) (template.HTML, error) {
	src := a.Content
	if a.Format == content.FormatMarkdown {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(a.Content), &buf); err != nil {
			return "", fmt.Errorf("convert markdown: %w", err)
		}
		src = buf.String()
	}
	return template.HTML(r.policy.Sanitize(src)), nil
}

func (r *Renderer) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
