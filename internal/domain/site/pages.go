package site

import "acc-portal/internal/domain/validation"

// Page is one of the public site pages that sections are placed on.
type Page string

const (
	PageHome      Page = "home"
	PageAbout     Page = "about"
	PageSolutions Page = "solutions"
	PageContact   Page = "contact"
	PageBlog      Page = "blog"
)

// Pages lists the public pages in navigation order.
var Pages = []Page{PageHome, PageAbout, PageSolutions, PageBlog, PageContact}

func (p Page) Valid() bool {
	for _, v := range Pages {
		if p == v {
			return true
		}
	}
	return false
}

// Path is the public URL path of the page.
func (p Page) Path() string {
	if p == PageHome {
		return "/"
	}
	return "/" + string(p)
}

func (p Page) Title() string {
	switch p {
	case PageHome:
		return "Home"
	case PageAbout:
		return "About Us"
	case PageSolutions:
		return "Solutions"
	case PageContact:
		return "Contact"
	case PageBlog:
		return "Blog"
	}
	return string(p)
}

func ParsePage(s string) (Page, error) {
	p := Page(s)
	if !p.Valid() {
		return "", validation.Newf("page", "unknown page %q", s)
	}
	return p, nil
}
