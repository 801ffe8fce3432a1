package feed

import (
	"mime"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/horizontrailers/rssgen/internal/blog"
)

const (
	// SnippetLength is the number of characters of stripped body text used
	// as a fallback description.
	SnippetLength = 250
	// Ellipsis is appended to every body-derived description.
	Ellipsis = "..."
	// DefaultPostsPath is the URL segment between the site URL and a
	// post's slug.
	DefaultPostsPath = "blog/details"
)

var tagRe = regexp.MustCompile(`(?i)(<([^>]+)>)`)

// Item is one feed entry derived from a blog post.
type Item struct {
	Title       string
	Description string
	URL         string
	Date        time.Time
	Author      string
	Categories  []string
	Enclosure   *Enclosure
}

// Enclosure is media attached to an item. Type is empty when it cannot be
// guessed from the URL.
type Enclosure struct {
	URL  string
	Type string
}

// NewItem maps a post to a feed item. Missing fields are carried over as
// zero values.
func NewItem(p blog.Post, siteURL, postsPath string) *Item {
	item := &Item{
		Title:       p.Title,
		Description: Describe(p),
		URL:         PostURL(siteURL, postsPath, p.Slug),
		Author:      p.Author,
		Categories:  p.Tags,
	}

	if item.Categories == nil {
		item.Categories = []string{}
	}

	if t, ok := p.Published(); ok {
		item.Date = t
	}

	if p.HeaderImg != "" {
		item.Enclosure = &Enclosure{
			URL:  p.HeaderImg,
			Type: mime.TypeByExtension(path.Ext(p.HeaderImg)),
		}
	}

	return item
}

// Describe returns the post's SEO description if it has one, otherwise the
// first SnippetLength characters of its body with markup removed.
func Describe(p blog.Post) string {
	if desc := p.SEODescription(); desc != "" {
		return desc
	}

	if p.Body == "" {
		return ""
	}

	return truncate(StripTags(p.Body), SnippetLength) + Ellipsis
}

// StripTags removes every opening and closing tag from s.
func StripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

// PostURL builds the canonical URL of a post. The slug is not escaped.
func PostURL(siteURL, postsPath, slug string) string {
	if postsPath == "" {
		postsPath = DefaultPostsPath
	}

	return strings.TrimSuffix(siteURL, "/") + "/" + strings.Trim(postsPath, "/") + "/" + slug
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n])
}
