package builder

import (
	"errors"
	"fmt"
	"io/ioutil"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
)

var (
	errRequiredFieldNotFound = errors.New("required field not found in config")
	errInvalidURL            = errors.New("value must be an absolute http(s) url")
	errNotFileName           = errors.New("value must be a file name, not a path")
)

const (
	DefaultConfigFile = "config.toml"
	DefaultGenerator  = "rssgen"
)

// Config holds everything a Builder needs to produce a feed.
type Config struct {
	SiteTitle       string
	SiteDescription string
	SiteURL         string
	ImageURL        string
	CopyrightHolder string
	Language        string
	Source          string
	OutputDir       string
	FeedFile        string
	PostsPath       string
	Template        string
	Generator       string
	Minify          bool
	// Now is the clock used for pubDate and the copyright year. It defaults
	// to time.Now.
	Now func() time.Time
}

// FeedURL returns the public URL of the generated feed.
func (c *Config) FeedURL() string {
	return strings.TrimSuffix(c.SiteURL, "/") + "/" + c.FeedFile
}

// DefaultConfig returns the configuration of the Horizon Trailers blog.
func DefaultConfig() *Config {
	siteURL := "https://www.horizontrailers.com"

	return &Config{
		SiteTitle:       "Horizon Trailers | Blog RSS Feed",
		SiteDescription: "Inside the trailer world. Read all the important news about Horizon Trailers.",
		SiteURL:         siteURL,
		ImageURL:        siteURL + "/logos/compressed_logo.webp",
		CopyrightHolder: "Horizon Trailers",
		Source:          "src/jsons/blogs.json",
		OutputDir:       "public",
		FeedFile:        "rss.xml",
		Generator:       DefaultGenerator,
		Now:             time.Now,
	}
}

type config struct {
	Site struct {
		Title       string `toml:"title" human:"site.title"`
		Description string `toml:"description" human:"site.description"`
		URL         string `toml:"url" human:"site.url"`
		Image       string `toml:"image" human:"site.image" optional:""`
		Copyright   string `toml:"copyright" human:"site.copyright" optional:""`
		Language    string `toml:"language" human:"site.language" optional:""`
	} `toml:"site"`
	Source struct {
		Path string `toml:"path" human:"source.path"`
	} `toml:"source"`
	Output struct {
		Dir  string `toml:"dir" human:"output.dir"`
		File string `toml:"file" human:"output.file"`
	} `toml:"output"`
	Build struct {
		PostsPath string `toml:"postsPath" human:"build.postsPath" optional:""`
		Template  string `toml:"template" human:"build.template" optional:""`
		Generator string `toml:"generator" human:"build.generator" optional:""`
		Minify    bool   `toml:"minify" human:"build.minify"`
	} `toml:"build"`
}

// ReadConfig reads and validates the TOML config file at path.
func ReadConfig(path string) (*Config, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := new(config)

	err = toml.Unmarshal(b, c)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}

	err = check(c)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	generator := c.Build.Generator
	if generator == "" {
		generator = DefaultGenerator
	}

	return &Config{
		SiteTitle:       c.Site.Title,
		SiteDescription: c.Site.Description,
		SiteURL:         c.Site.URL,
		ImageURL:        c.Site.Image,
		CopyrightHolder: c.Site.Copyright,
		Language:        c.Site.Language,
		Source:          c.Source.Path,
		OutputDir:       c.Output.Dir,
		FeedFile:        c.Output.File,
		PostsPath:       c.Build.PostsPath,
		Template:        c.Build.Template,
		Generator:       generator,
		Minify:          c.Build.Minify,
		Now:             time.Now,
	}, nil
}

func check(c *config) error {
	err := checkrec(c)
	if err != nil {
		return err
	}

	for _, f := range []struct {
		name, val string
	}{
		{"site.url", c.Site.URL},
		{"site.image", c.Site.Image},
	} {
		if f.val == "" {
			continue
		}

		u, err := url.Parse(f.val)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", errInvalidURL, f.name)
		}
	}

	if strings.ContainsAny(c.Output.File, `/\`) {
		return fmt.Errorf("%w: %q", errNotFileName, "output.file")
	}

	return nil
}

func checkrec(c interface{}) error {
	cv := reflect.Indirect(reflect.ValueOf(c))
	vt := cv.Type()

	for i := 0; i < cv.NumField(); i++ {
		switch cv.Field(i).Kind() {
		case reflect.Struct:
			err := checkrec(cv.Field(i).Interface())
			if err != nil {
				return err
			}
		case reflect.String:
			if len(cv.Field(i).String()) == 0 {
				if _, found := vt.Field(i).Tag.Lookup("optional"); found {
					continue
				}

				return fmt.Errorf("%w: %q", errRequiredFieldNotFound, vt.Field(i).Tag.Get("human"))
			}
		default:
		}
	}

	return nil
}
