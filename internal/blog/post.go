package blog

import (
	"time"

	"github.com/araddon/dateparse"
)

// SEO holds author-supplied overrides for search engines and feeds.
type SEO struct {
	Description string `json:"description" yaml:"description"`
}

// Post is one blog record as it is stored in the site's data files.
type Post struct {
	Title     string   `json:"title" yaml:"title"`
	Slug      string   `json:"slug" yaml:"slug"`
	Date      string   `json:"date" yaml:"date"`
	Author    string   `json:"author" yaml:"author"`
	Body      string   `json:"body,omitempty" yaml:"body,omitempty"`
	Tags      []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	HeaderImg string   `json:"headerImg,omitempty" yaml:"headerImg,omitempty"`
	SEO       *SEO     `json:"seo,omitempty" yaml:"seo,omitempty"`
}

// Published returns the post's date. The second return value is false when
// the date is missing or could not be parsed. Dates without a zone are read
// as UTC.
func (p Post) Published() (time.Time, bool) {
	if p.Date == "" {
		return time.Time{}, false
	}

	t, err := dateparse.ParseIn(p.Date, time.UTC)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// SEODescription returns the override description, or "" if there is none.
func (p Post) SEODescription() string {
	if p.SEO == nil {
		return ""
	}

	return p.SEO.Description
}
