package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/pruzko/warcraft-rs/internal/m2"
	"github.com/pruzko/warcraft-rs/internal/skin"
)

func skinCmd() *cli.Command {
	return &cli.Command{
		Name:  "skin",
		Usage: "Inspect and convert skin files",
		Commands: []*cli.Command{
			skinInfoCmd(),
			skinConvertCmd(),
		},
	}
}

func skinInfoCmd() *cli.Command {
	var forceLegacy bool

	return &cli.Command{
		Name:      "info",
		Usage:     "Print skin geometry summary",
		ArgsUsage: "<file.skin>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "legacy",
				Usage:       "parse as the legacy header layout instead of sniffing",
				Destination: &forceLegacy,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return cli.Exit("error: skin path required", 1)
			}

			mode := skin.Auto
			if forceLegacy {
				mode = skin.ForceLegacy
			}
			s, err := skin.LoadMode(path, mode)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load %s: %v", path, err), 1)
			}

			fmt.Printf("Skin:      %s\n", path)
			fmt.Printf("Header:    %s\n", s.Kind)
			fmt.Printf("Indices:   %d\n", len(s.Indices))
			fmt.Printf("Triangles: %d (%d indices)\n", len(s.Triangles)/3, len(s.Triangles))
			fmt.Printf("Submeshes: %d\n", len(s.Submeshes))
			fmt.Printf("Max bones: %d\n", s.BoneCountMax)
			for i, sm := range s.Submeshes {
				fmt.Printf("  [%d] id=%d vertices=%d..%d triangles=%d..%d bones=%d\n",
					i, sm.ID, sm.VertexStart, sm.VertexStart+sm.VertexCount,
					sm.TriangleStart, sm.TriangleStart+sm.TriangleCount, sm.BoneCount)
			}

			if findings := s.Validate(); len(findings) > 0 {
				fmt.Println("\nFindings:")
				for _, f := range findings {
					fmt.Printf("  %s\n", f)
				}
			}
			return nil
		},
	}
}

func skinConvertCmd() *cli.Command {
	var versionName string

	return &cli.Command{
		Name:      "convert",
		Usage:     "Re-encode a skin for another expansion version",
		ArgsUsage: "<input.skin> <output.skin>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "target expansion (classic, tbc, wotlk, cata, mop, wod, legion)",
				Required:    true,
				Destination: &versionName,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return cli.Exit("error: input and output paths required", 1)
			}
			in, out := cmd.Args().Get(0), cmd.Args().Get(1)

			target, err := m2.VersionFromExpansion(versionName)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			s, err := skin.Load(in)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load %s: %v", in, err), 1)
			}
			if err := s.Save(out, target); err != nil {
				return cli.Exit(fmt.Sprintf("error: save %s: %v", out, err), 1)
			}
			fmt.Printf("%s (%s) -> %s (%s)\n", in, s.Kind, out, target)
			return nil
		},
	}
}
