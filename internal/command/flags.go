// Copyright (c) 2025 The photoframe authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/RickFBAG/photoframe/internal/config"
	"github.com/RickFBAG/photoframe/internal/render"
)

// renderFlags are the render command options. Defaults cascade: explicit
// flag, then the render section of photoframe.yaml, then the built-in
// value.
func renderFlags(settings config.Settings) []cli.Flag {
	src := altsrc.StringSourcer(settings.Source)
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "source",
			Aliases: []string{"s"},
			Usage:   "content source, image or widget",
			Value:   render.SourceImage,
			Validator: func(value string) error {
				if value != render.SourceImage && value != render.SourceWidget {
					return fmt.Errorf("source must be %q or %q", render.SourceImage, render.SourceWidget)
				}
				return nil
			},
		},
		&cli.StringFlag{
			Name:     "id",
			Aliases:  []string{"i"},
			Usage:    "image filename or widget slug",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage:   "widget configuration as key=value, repeatable",
		},
		&cli.StringFlag{
			Name:    "layout",
			Aliases: []string{"l"},
			Usage:   "layout preset",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("PHOTOFRAME_LAYOUT"),
				yaml.YAML("render.layout", src),
			),
			Value: "single",
		},
		&cli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "color theme",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("PHOTOFRAME_THEME"),
				yaml.YAML("render.theme", src),
			),
			Value: "light",
		},
		&cli.StringFlag{
			Name:    "palette",
			Aliases: []string{"p"},
			Usage:   "e-ink palette preset or alias",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("render.palette", src),
			),
			Value: "7",
		},
		&cli.StringFlag{
			Name:    "dither",
			Aliases: []string{"d"},
			Usage:   "dither mode: floyd-steinberg, atkinson or none",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("render.dither", src),
			),
			Value: "floyd-steinberg",
		},
		&cli.StringFlag{
			Name:    "output-dir",
			Aliases: []string{"o"},
			Usage:   "directory for rendered output, defaults to the image directory",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("render.output_dir", src),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:  "separators",
			Usage: "draw separator lines between panels",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("render.separators", src),
			),
			Value: true,
		},
	}
}
