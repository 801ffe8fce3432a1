package blog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedSource = errors.New("unsupported source format")
	ErrNotSerializable   = errors.New("not serializable")
)

// Load reads posts from path. A .json or .yaml/.yml file must hold an array
// of posts. A directory is read as a collection of Markdown posts with YAML
// front matter.
func Load(path string) ([]Post, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve source %q: %w", path, err)
	}

	if info.IsDir() {
		return loadMarkdownDir(path)
	}

	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read source %q: %w", path, err)
	}

	var posts []Post

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(b, &posts)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &posts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, path)
	}
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}

	return posts, nil
}

func loadMarkdownDir(dir string) ([]Post, error) {
	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
		goldmark.WithRendererOptions(html.WithUnsafe()))

	var paths []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Flatten posts if they are nested
		if info.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}

		paths = append(paths, path)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking posts dir: %w", err)
	}

	sort.Strings(paths)

	posts := make([]Post, 0, len(paths))

	for _, path := range paths {
		p, err := loadMarkdown(md, path)
		if err != nil {
			return nil, err
		}

		posts = append(posts, p)
	}

	return posts, nil
}

func loadMarkdown(md goldmark.Markdown, path string) (Post, error) {
	fb, err := ioutil.ReadFile(path)
	if err != nil {
		return Post{}, fmt.Errorf("could not read post %q: %w", path, err)
	}

	buf := new(bytes.Buffer)
	ctx := parser.NewContext()

	err = md.Convert(fb, buf, parser.WithContext(ctx))
	if err != nil {
		return Post{}, fmt.Errorf("could not render markdown in %q: %w", path, err)
	}

	data := meta.Get(ctx)

	p := Post{
		Slug: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Body: buf.String(),
	}

	for key, val := range data {
		switch key {
		case "title":
			p.Title, err = str(key, val)
		case "slug":
			p.Slug, err = str(key, val)
		case "date":
			p.Date, err = str(key, val)
		case "author":
			p.Author, err = str(key, val)
		case "headerImg":
			p.HeaderImg, err = str(key, val)
		case "description":
			var desc string
			desc, err = str(key, val)
			p.SEO = &SEO{Description: desc}
		case "tags":
			p.Tags, err = strs(key, val)
		}
		if err != nil {
			return Post{}, fmt.Errorf("could not process front-matter on %q: %w", path, err)
		}
	}

	return p, nil
}

func str(key string, val interface{}) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case time.Time:
		return v.Format(time.RFC3339), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("%w: key %q", ErrNotSerializable, key)
	}
}

func strs(key string, val interface{}) ([]string, error) {
	switch v := val.(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, err := str(key, item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		return []string{v}, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: key %q", ErrNotSerializable, key)
	}
}
