package mini

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/xml"
)

var ErrCloseMiniFile = errors.New("error closing mini file")

const _ReadWrite = 0644

// Creator can create mini.Files.
type Creator struct {
	mini   *minify.M
	minify bool
}

// New returns a new Creator. Files it creates are minified only when
// enabled is true.
func New(enabled bool) *Creator {
	m := minify.New()
	m.AddRegexp(regexp.MustCompile("[/+]xml$"), &xml.Minifier{KeepWhitespace: true})

	return &Creator{mini: m, minify: enabled}
}

// File is written to a temporary file next to its destination and renamed
// into place on Close, so readers never see a partially written file. If
// the Creator minifies and the extension is .xml, .rss or .atom, content is
// minified as it is written. Whitespace inside text and CDATA is kept.
type File struct {
	path   string
	tmp    *os.File
	writer io.WriteCloser
	isMini bool
}

// Create creates a new mini.File that will replace path on Close.
func (m *Creator) Create(path string) (*File, error) {
	tmp, err := ioutil.TempFile(filepath.Dir(path), "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return nil, fmt.Errorf("could not create mini file %q: %w", path, err)
	}

	f := &File{path: path, tmp: tmp}

	if mime, ok := getMIME(path); ok && m.minify {
		f.writer = m.mini.Writer(mime, tmp)
		f.isMini = true
	}

	return f, nil
}

// Name returns the destination path of the file.
func (f *File) Name() string {
	return f.path
}

func (f *File) Write(p []byte) (int, error) {
	if f.isMini {
		return f.writer.Write(p)
	}

	return f.tmp.Write(p)
}

// Close flushes the content and moves it to its destination. On error the
// destination is left untouched.
func (f *File) Close() error {
	var (
		err1 error
		err2 error
	)

	if f.isMini {
		err1 = f.writer.Close()
	}

	err2 = f.tmp.Close()

	if err1 != nil || err2 != nil {
		os.Remove(f.tmp.Name())
	}

	if err1 != nil && err2 != nil {
		return fmt.Errorf("%w: multiple errors: (1) %s; (2) %s", ErrCloseMiniFile, err1.Error(), err2.Error())
	} else if err1 != nil {
		return fmt.Errorf("%w: %s", ErrCloseMiniFile, err1.Error())
	} else if err2 != nil {
		return fmt.Errorf("%w: %s", ErrCloseMiniFile, err2.Error())
	}

	err := os.Chmod(f.tmp.Name(), _ReadWrite)
	if err == nil {
		err = os.Rename(f.tmp.Name(), f.path)
	}
	if err != nil {
		os.Remove(f.tmp.Name())
		return fmt.Errorf("%w: %s", ErrCloseMiniFile, err.Error())
	}

	return nil
}

// Abort discards everything written so far.
func (f *File) Abort() {
	if f.isMini {
		f.writer.Close()
	}

	f.tmp.Close()
	os.Remove(f.tmp.Name())
}

func getMIME(path string) (mime string, ok bool) {
	switch filepath.Ext(path) {
	case ".xml", ".rss", ".atom":
		return "text/xml", true
	default:
		return "", false
	}
}
