package feed

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/flosch/pongo2/v4"
)

// DateFormat is RFC 1123 with the zone spelled as GMT, as feed readers
// expect for pubDate and lastBuildDate.
const DateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// Channel is the feed-level metadata of a document.
type Channel struct {
	Title         string
	Description   string
	SiteURL       string
	FeedURL       string
	ImageURL      string
	Copyright     string
	Language      string
	Generator     string
	PubDate       time.Time
	LastBuildDate time.Time
}

// Renderer serializes a channel and its items into an RSS 2.0 document.
type Renderer struct {
	tpl *pongo2.Template
}

type channelView struct {
	Title         string
	Description   string
	SiteURL       string
	FeedURL       string
	ImageURL      string
	Copyright     string
	Language      string
	Generator     string
	PubDate       string
	LastBuildDate string
}

type itemView struct {
	Title         string
	Description   string
	URL           string
	Author        string
	Categories    []string
	PubDate       string
	EnclosureURL  string
	EnclosureType string
}

// NewRenderer compiles the feed template. If templatePath is empty the
// built-in RSS 2.0 template is used.
func NewRenderer(templatePath string) (*Renderer, error) {
	if !pongo2.FilterExists("cdata") {
		err := pongo2.RegisterFilter("cdata", filterCDATA)
		if err != nil {
			return nil, fmt.Errorf("could not register filter: %w", err)
		}
	}

	var (
		tpl *pongo2.Template
		err error
	)

	if templatePath == "" {
		tpl, err = pongo2.FromString(rssT)
	} else {
		tpl, err = pongo2.FromFile(templatePath)
	}
	if err != nil {
		return nil, fmt.Errorf("could not compile feed template: %w", err)
	}

	return &Renderer{tpl: tpl}, nil
}

// Render writes the document for ch and items to w, one element per line
// with two-space indentation.
func (r *Renderer) Render(w io.Writer, ch *Channel, items []*Item) error {
	views := make([]*itemView, 0, len(items))
	for _, item := range items {
		views = append(views, newItemView(item))
	}

	out, err := r.tpl.Execute(pongo2.Context{
		"channel": newChannelView(ch),
		"items":   views,
	})
	if err != nil {
		return fmt.Errorf("could not render feed: %w", err)
	}

	_, err = io.WriteString(w, out)
	if err != nil {
		return fmt.Errorf("could not write feed: %w", err)
	}

	return nil
}

func newChannelView(ch *Channel) *channelView {
	return &channelView{
		Title:         ch.Title,
		Description:   ch.Description,
		SiteURL:       ch.SiteURL,
		FeedURL:       ch.FeedURL,
		ImageURL:      ch.ImageURL,
		Copyright:     ch.Copyright,
		Language:      ch.Language,
		Generator:     ch.Generator,
		PubDate:       formatDate(ch.PubDate),
		LastBuildDate: formatDate(ch.LastBuildDate),
	}
}

func newItemView(item *Item) *itemView {
	v := &itemView{
		Title:       item.Title,
		Description: item.Description,
		URL:         item.URL,
		Author:      item.Author,
		Categories:  item.Categories,
		PubDate:     formatDate(item.Date),
	}

	if item.Enclosure != nil {
		v.EnclosureURL = item.Enclosure.URL
		v.EnclosureType = item.Enclosure.Type
	}

	return v
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(DateFormat)
}

// filterCDATA splits any "]]>" so the value can sit inside a CDATA section.
func filterCDATA(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(strings.ReplaceAll(in.String(), "]]>", "]]]]><![CDATA[>")), nil
}
