package builder

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/horizontrailers/rssgen/internal/blog"
	"github.com/horizontrailers/rssgen/internal/feed"
	"github.com/horizontrailers/rssgen/mini"
)

var ErrNotDir = errors.New("not a directory")

const _ReadWriteExecute = 0777

// Builder turns blog posts into a feed file.
type Builder interface {
	// Build loads posts from the configured source and generates the feed.
	Build() Result
	// Generate writes the feed for posts.
	Generate(posts []blog.Post) Result
}

// Result describes the outcome of one generation.
type Result struct {
	Path  string
	Items int
	Err   error
}

// OK reports whether the feed was written.
func (r Result) OK() bool {
	return r.Err == nil
}

type builderImpl struct {
	config   *Config
	log      *log.Logger
	renderer *feed.Renderer
	files    *mini.Creator
}

// New creates a new Builder instance. It initializes dependencies needed
// to do the work of building. A nil logger logs to stderr.
func New(c *Config, l *log.Logger) (Builder, error) {
	if l == nil {
		l = log.New(os.Stderr, "[rssgen] ", 0)
	}

	renderer, err := feed.NewRenderer(c.Template)
	if err != nil {
		return nil, fmt.Errorf("could not load template: %w", err)
	}

	return &builderImpl{
		config:   c,
		log:      l,
		renderer: renderer,
		files:    mini.New(c.Minify),
	}, nil
}

// Run generates the feed described by DefaultConfig. It never panics or
// exits; the outcome is logged and returned.
func Run() Result {
	b, err := New(DefaultConfig(), nil)
	if err != nil {
		return Result{Err: err}
	}

	return b.Build()
}

func (b *builderImpl) Build() Result {
	posts, err := blog.Load(b.config.Source)
	if err != nil {
		b.log.Printf("Error loading posts: %v", err)
		return Result{Path: b.path(), Err: err}
	}

	return b.Generate(posts)
}

func (b *builderImpl) Generate(posts []blog.Post) Result {
	now := b.now()

	sorted := feed.Sort(posts)

	items := make([]*feed.Item, 0, len(sorted))
	for _, p := range sorted {
		items = append(items, feed.NewItem(p, b.config.SiteURL, b.config.PostsPath))
	}

	res := Result{Path: b.path(), Items: len(items)}

	res.Err = b.write(b.channel(now), items)
	if res.Err != nil {
		b.log.Printf("Error writing RSS feed: %v", res.Err)
		return res
	}

	b.log.Printf("RSS feed generated successfully at %s", res.Path)

	return res
}

func (b *builderImpl) channel(now time.Time) *feed.Channel {
	ch := &feed.Channel{
		Title:         b.config.SiteTitle,
		Description:   b.config.SiteDescription,
		SiteURL:       b.config.SiteURL,
		FeedURL:       b.config.FeedURL(),
		ImageURL:      b.config.ImageURL,
		Language:      b.config.Language,
		Generator:     b.config.Generator,
		PubDate:       now,
		LastBuildDate: now,
	}

	if b.config.CopyrightHolder != "" {
		ch.Copyright = fmt.Sprintf("All rights reserved %d, %s", now.Year(), b.config.CopyrightHolder)
	}

	return ch
}

func (b *builderImpl) write(ch *feed.Channel, items []*feed.Item) error {
	dir := b.config.OutputDir

	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		err = os.MkdirAll(dir, os.FileMode(_ReadWriteExecute))
		if err != nil {
			return fmt.Errorf("could not create output dir: %w", err)
		}
	case err != nil:
		return fmt.Errorf("could not resolve directory %q: %w", dir, err)
	case !info.IsDir():
		return fmt.Errorf("%w: %q", ErrNotDir, dir)
	}

	f, err := b.files.Create(b.path())
	if err != nil {
		return err
	}

	err = b.renderer.Render(f, ch, items)
	if err != nil {
		f.Abort()
		return err
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("could not write file %q: %w", f.Name(), err)
	}

	return nil
}

func (b *builderImpl) path() string {
	return filepath.Join(b.config.OutputDir, b.config.FeedFile)
}

func (b *builderImpl) now() time.Time {
	if b.config.Now == nil {
		return time.Now()
	}

	return b.config.Now()
}
