package blog

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const jsonPosts = `[
  {
    "title": "Winter Towing",
    "slug": "winter-towing",
    "date": "2024-01-01",
    "author": "Jane Doe",
    "body": "<p>Check your tyres.</p>",
    "tags": ["safety", "winter"],
    "headerImg": "https://cdn.example.com/winter.webp",
    "seo": {"description": "Short desc"}
  },
  {
    "title": "New Range",
    "slug": "new-range",
    "date": "2024-06-01T10:00:00Z",
    "author": "John Roe"
  }
]`

const yamlPosts = `- title: Winter Towing
  slug: winter-towing
  date: "2024-01-01"
  author: Jane Doe
  tags: [safety, winter]
  seo:
    description: Short desc
- title: New Range
  slug: new-range
  date: "2024-06-01"
`

const mdPost = `---
title: Hello
date: "2024-06-01"
author: Jane Doe
tags:
  - news
  - launch
headerImg: https://cdn.example.com/hello.webp
---
# Hello

World
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	err := ioutil.WriteFile(path, []byte(content), 0666)
	if err != nil {
		t.Fatal(err)
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		Name    string
		File    string
		Content string
	}{
		{Name: "json", File: "blogs.json", Content: jsonPosts},
		{Name: "yaml", File: "blogs.yaml", Content: yamlPosts},
	}

	for _, tcase := range tests {
		t.Run(tcase.Name, func(t *testing.T) {
			path := filepath.Join(dir, tcase.File)
			writeFile(t, path, tcase.Content)

			posts, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}

			if len(posts) != 2 {
				t.Fatalf("got %d posts, want 2", len(posts))
			}

			first := posts[0]
			if first.Slug != "winter-towing" || first.Author != "Jane Doe" {
				t.Errorf("unexpected first post: %+v", first)
			}

			if first.SEODescription() != "Short desc" {
				t.Errorf("got seo description %q", first.SEODescription())
			}

			if len(first.Tags) != 2 || first.Tags[1] != "winter" {
				t.Errorf("got tags %v", first.Tags)
			}

			if posts[1].SEO != nil {
				t.Errorf("expected no seo block on second post")
			}
		})
	}
}

func TestLoadMarkdownDir(t *testing.T) {
	dir := t.TempDir()

	err := os.Mkdir(filepath.Join(dir, "nested"), 0777)
	if err != nil {
		t.Fatal(err)
	}

	writeFile(t, filepath.Join(dir, "nested", "hello.md"), mdPost)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	posts, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(posts))
	}

	p := posts[0]

	if p.Slug != "hello" {
		t.Errorf("got slug %q, want slug from file name", p.Slug)
	}

	if p.Title != "Hello" || p.Author != "Jane Doe" {
		t.Errorf("unexpected front matter: %+v", p)
	}

	if p.HeaderImg != "https://cdn.example.com/hello.webp" {
		t.Errorf("got headerImg %q", p.HeaderImg)
	}

	if len(p.Tags) != 2 || p.Tags[0] != "news" {
		t.Errorf("got tags %v", p.Tags)
	}

	if p.Body != "<h1>Hello</h1>\n<p>World</p>\n" {
		t.Errorf("got body %q", p.Body)
	}

	if p.SEO != nil {
		t.Errorf("expected no seo override")
	}
}

func TestLoadUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blogs.csv")
	writeFile(t, path, "title,slug")

	_, err := Load(path)
	if !errors.Is(err, ErrUnsupportedSource) {
		t.Errorf("got %v, want ErrUnsupportedSource", err)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("expected error but did not get one")
	}
}

func TestPublished(t *testing.T) {
	tests := []struct {
		Date   string
		Want   time.Time
		WantOK bool
	}{
		{Date: "2024-01-01", Want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), WantOK: true},
		{Date: "2024-06-01T10:00:00Z", Want: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), WantOK: true},
		{Date: "", WantOK: false},
		{Date: "not a date", WantOK: false},
	}

	for _, tcase := range tests {
		t.Run(tcase.Date, func(t *testing.T) {
			got, ok := Post{Date: tcase.Date}.Published()
			if ok != tcase.WantOK {
				t.Fatalf("got ok=%v, want %v", ok, tcase.WantOK)
			}

			if ok && !got.Equal(tcase.Want) {
				t.Errorf("got %s, want %s", got, tcase.Want)
			}
		})
	}
}
