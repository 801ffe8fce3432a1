package mini

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
)

const doc = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <!-- generated -->
  <channel>
    <title>a  b</title>
  </channel>
</rss>
`

func writeDoc(t *testing.T, c *Creator, path string) {
	t.Helper()

	f, err := c.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.Write([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}

	err = f.Close()
	if err != nil {
		t.Fatal(err)
	}
}

func TestCreate(t *testing.T) {
	tests := []struct {
		Name     string
		Minify   bool
		File     string
		Minified bool
	}{
		{Name: "plain", Minify: false, File: "rss.xml", Minified: false},
		{Name: "minified", Minify: true, File: "rss.xml", Minified: true},
		{Name: "unknown extension is never minified", Minify: true, File: "rss.txt", Minified: false},
	}

	for _, tcase := range tests {
		t.Run(tcase.Name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tcase.File)

			writeDoc(t, New(tcase.Minify), path)

			b, err := ioutil.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}

			if got := !strings.Contains(string(b), "<!-- generated -->"); got != tcase.Minified {
				t.Errorf("minified=%v, want %v:\n%s", got, tcase.Minified, b)
			}

			if !strings.Contains(string(b), "<title>a  b</title>") {
				t.Errorf("content lost:\n%s", b)
			}

			entries, err := ioutil.ReadDir(dir)
			if err != nil {
				t.Fatal(err)
			}

			if len(entries) != 1 {
				t.Errorf("expected only the destination file, got %d entries", len(entries))
			}
		})
	}
}

func TestAbort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rss.xml")

	err := ioutil.WriteFile(path, []byte("previous"), 0666)
	if err != nil {
		t.Fatal(err)
	}

	f, err := New(false).Create(path)
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.Write([]byte("partial"))
	if err != nil {
		t.Fatal(err)
	}

	f.Abort()

	b, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(b) != "previous" {
		t.Errorf("destination changed to %q", b)
	}

	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 1 {
		t.Errorf("temporary file left behind")
	}
}

func TestCreateMissingDir(t *testing.T) {
	_, err := New(false).Create(filepath.Join(t.TempDir(), "missing", "rss.xml"))
	if err == nil {
		t.Error("expected error but did not get one")
	}
}
