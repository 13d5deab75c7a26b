package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bodgit/imagebanner"
	"github.com/bodgit/imagebanner/ansi"
	"github.com/bodgit/imagebanner/palette"
	"github.com/bodgit/imagebanner/resize"
	"github.com/muesli/termenv"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func renderFlags() []cli.Flag {
	p := imagebanner.DefaultParameters()
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "width",
			Value: p.MaxWidth,
			Usage: "maximum width in characters",
		},
		&cli.Float64Flag{
			Name:  "aspect-ratio",
			Value: p.AspectRatio,
			Usage: "height correction for non-square character cells",
		},
		&cli.BoolFlag{
			Name:  "invert",
			Usage: "render for a dark terminal background",
		},
		&cli.StringFlag{
			Name:  "resampling",
			Value: p.Resampling.String(),
			Usage: "resampling filter; box, nearest, linear, cubic or lanczos",
		},
		&cli.IntFlag{
			Name:  "colors",
			Usage: "reduce the image to this many colors first, 0 to disable",
		},
	}
}

func parameters(c *cli.Context) (imagebanner.Parameters, error) {
	r, err := resize.ParseResampling(c.String("resampling"))
	if err != nil {
		return imagebanner.Parameters{}, err
	}
	return imagebanner.Parameters{
		MaxWidth:    c.Int("width"),
		AspectRatio: c.Float64("aspect-ratio"),
		Invert:      c.Bool("invert"),
		Resampling:  r,
		Colors:      c.Int("colors"),
	}, nil
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "WARNING ", 0)
}

func newProgressLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func openCache(c *cli.Context) (*imagebanner.Cache, error) {
	if c.String("cache") == "" {
		return nil, nil
	}
	return imagebanner.OpenCache(c.String("cache"))
}

func main() {
	app := cli.NewApp()

	app.Name = "imagebanner"
	app.Usage = "Render images as ASCII art console banners"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "cache",
			EnvVars: []string{"IMAGEBANNER_CACHE"},
			Usage:   "path to banner cache database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "report each banner written",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "render",
			Usage:       "Render an image to standard output",
			Description: "Color markers are resolved for the terminal unless --raw is given.",
			ArgsUsage:   "FILE",
			Flags: append(renderFlags(), &cli.BoolFlag{
				Name:  "raw",
				Usage: "print color markers instead of escape sequences",
			}),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				p, err := parameters(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				ib, err := imagebanner.New(c.Args().First(), newLogger())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				cache, err := openCache(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if cache != nil {
					defer cache.Close()
					ib.UseCache(cache)
				}

				banner, err := ib.Render(p)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if !c.Bool("raw") {
					banner = ansi.Resolve(banner, termenv.EnvColorProfile())
				}
				fmt.Print(banner)

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Write a banner next to every image below a directory",
			Description: "Each banner is written to the image path with \".banner.txt\" appended.\nImages that cannot be rendered are reported and skipped.",
			ArgsUsage:   "DIRECTORY",
			Flags:       renderFlags(),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				p, err := parameters(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				cache, err := openCache(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if cache != nil {
					defer cache.Close()
				}

				s := imagebanner.NewScanner(newLogger(), cache)
				s.SetProgress(newProgressLogger(c))

				if err := s.Scan(c.Args().First(), p); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "palette",
			Usage: "List the terminal colors banners are drawn with",
			Action: func(c *cli.Context) error {
				profile := termenv.EnvColorProfile()
				for i, e := range palette.ANSI.Entries() {
					swatch := ansi.Resolve(ansi.BackgroundColor(e.Name)+"    "+ansi.BackgroundColor(ansi.Default), profile)
					fmt.Printf("%2d %-14s %3d %3d %3d %s %s\n", i, e.Name, e.R, e.G, e.B, e.Hex(), swatch)
				}
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
