package main

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/horizontrailers/rssgen/internal/builder"
	"github.com/horizontrailers/rssgen/internal/proj"
)

type buildOptions struct {
	config string
	source string
	output string
	minify bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("[rssgen] ")

	opts := &buildOptions{}

	root := &cobra.Command{
		Use:           "rssgen",
		Short:         "Generate an RSS feed from blog posts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return build(cmd.Flags(), opts)
		},
	}
	addBuildFlags(root.Flags(), opts)

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Write the feed to the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return build(cmd.Flags(), opts)
		},
	}
	addBuildFlags(buildCmd.Flags(), opts)

	initCmd := &cobra.Command{
		Use:   "init <dir>",
		Short: "Create a new project with a sample config and posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return proj.New(args[0], log.New(os.Stderr, "", 0))
		},
	}

	root.AddCommand(buildCmd, initCmd)

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func addBuildFlags(fs *flag.FlagSet, o *buildOptions) {
	fs.StringVarP(&o.config, "config", "c", builder.DefaultConfigFile, "config file, relative to current working directory")
	fs.StringVar(&o.source, "source", "", "posts source (.json, .yaml or a directory of .md files), overrides the config")
	fs.StringVarP(&o.output, "output", "o", "", "output directory, overrides the config")
	fs.BoolVar(&o.minify, "minify", false, "minify the generated feed")
}

func build(fs *flag.FlagSet, o *buildOptions) error {
	c, err := builder.ReadConfig(o.config)
	switch {
	case errors.Is(err, os.ErrNotExist) && !fs.Changed("config"):
		log.Printf("No %s found, using built-in defaults", o.config)
		c = builder.DefaultConfig()
	case err != nil:
		return err
	}

	if o.source != "" {
		c.Source = o.source
	}

	if o.output != "" {
		c.OutputDir = o.output
	}

	if fs.Changed("minify") {
		c.Minify = o.minify
	}

	b, err := builder.New(c, log.New(os.Stderr, "[rssgen] ", 0))
	if err != nil {
		return err
	}

	return b.Build().Err
}
