package proj

import (
	"embed"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
)

//go:embed skeleton
var skeleton embed.FS

// New scaffolds a feed project in a new directory called name.
func New(name string, l *log.Logger) error {
	if l == nil {
		l = log.New(os.Stderr, "", 0)
	}

	l.Printf("Creating new rssgen project in %q", name)

	root := &node{IsDir: true, Path: name, Children: projTree}

	err := buildTree(l, root, "")
	if err != nil {
		return fmt.Errorf("could not build project tree: %w", err)
	}

	l.Print("DONE")

	return nil
}

type node struct {
	IsDir    bool
	Path     string
	Data     []byte
	Children []*node
}

var projTree = []*node{
	{IsDir: false, Path: "config.toml", Data: mustAsset("skeleton/config.toml")},
	{IsDir: true, Path: "src", Children: []*node{
		{IsDir: true, Path: "jsons", Children: []*node{
			{IsDir: false, Path: "blogs.json", Data: mustAsset("skeleton/blogs.json")},
		}},
	}},
	{IsDir: true, Path: "public"},
}

func mustAsset(name string) []byte {
	b, err := skeleton.ReadFile(name)
	if err != nil {
		panic(err)
	}

	return b
}

func buildTree(l *log.Logger, n *node, parentPath string) error {
	path := filepath.Join(parentPath, n.Path)

	if n.IsDir {
		l.Printf("==> Creating %q directory", path)

		err := os.Mkdir(path, os.FileMode(0777))
		if err != nil {
			return fmt.Errorf("could not create directory %q: %w", path, err)
		}
	} else {
		l.Printf("==> Creating %q", path)

		err := ioutil.WriteFile(path, n.Data, os.FileMode(0666))
		if err != nil {
			return fmt.Errorf("could not write file %q: %w", path, err)
		}
	}

	for i := range n.Children {
		err := buildTree(l, n.Children[i], path)
		if err != nil {
			return err
		}
	}

	return nil
}
