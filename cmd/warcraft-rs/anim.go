package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/pruzko/warcraft-rs/internal/anim"
	"github.com/pruzko/warcraft-rs/internal/m2"
)

func animCmd() *cli.Command {
	return &cli.Command{
		Name:  "anim",
		Usage: "Inspect and convert external animation files",
		Commands: []*cli.Command{
			animInfoCmd(),
			animConvertCmd(),
		},
	}
}

func animInfoCmd() *cli.Command {
	var detailed bool

	return &cli.Command{
		Name:      "info",
		Usage:     "Print animation file metadata",
		ArgsUsage: "<file.anim>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "detailed",
				Aliases:     []string{"d"},
				Usage:       "include per-section ranges and memory breakdown",
				Destination: &detailed,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return cli.Exit("error: anim path required", 1)
			}

			f, err := anim.Load(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load %s: %v", path, err), 1)
			}

			fmt.Printf("Anim:       %s\n", path)
			fmt.Printf("Format:     %s\n", f.Format)
			fmt.Printf("Animations: %d\n", f.AnimationCount())
			switch {
			case f.Modern != nil:
				fmt.Printf("Header:     version=%d ids=%d entry table at 0x%X\n",
					f.Modern.Header.Version, f.Modern.Header.IDCount, f.Modern.Header.EntryOffset)
			case f.Legacy != nil:
				fmt.Printf("File size:  %d bytes\n", f.Legacy.FileSize)
			}
			if f.Hints != nil {
				fmt.Printf("Structure:  valid=%t blocks=%d timestamps=%t\n",
					f.Hints.AppearsValid, f.Hints.EstimatedBlocks, f.Hints.HasTimestamps)
			}

			if !detailed {
				return nil
			}

			for i, sec := range f.Sections {
				fmt.Printf("  section %d: id=%d range=%d..%dms bones=%d\n",
					i, sec.Header.ID, sec.Header.Start, sec.Header.End, len(sec.BoneTracks))
			}

			usage := f.MemoryUsage()
			fmt.Println("\nMemory usage:")
			fmt.Printf("  sections:     %d\n", usage.Sections)
			fmt.Printf("  bone tracks:  %d\n", usage.BoneAnimations)
			fmt.Printf("  translation:  %d keyframes\n", usage.TranslationKeyframes)
			fmt.Printf("  rotation:     %d keyframes\n", usage.RotationKeyframes)
			fmt.Printf("  scaling:      %d keyframes\n", usage.ScalingKeyframes)
			fmt.Printf("  total:        %d keyframes, ~%d bytes\n", usage.TotalKeyframes(), usage.ApproximateBytes)
			return nil
		},
	}
}

func animConvertCmd() *cli.Command {
	var versionName string

	return &cli.Command{
		Name:      "convert",
		Usage:     "Re-encode an animation file for another expansion version",
		ArgsUsage: "<input.anim> <output.anim>",
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

			f, err := anim.Load(in)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load %s: %v", in, err), 1)
			}

			converted := f.Convert(target)
			if err := converted.Save(out); err != nil {
				return cli.Exit(fmt.Sprintf("error: save %s: %v", out, err), 1)
			}
			fmt.Printf("%s (%s) -> %s (%s)\n", in, f.Format, out, converted.Format)
			if converted.Hints != nil && !converted.Hints.AppearsValid {
				fmt.Println("warning: source structure looked implausible, output may be incomplete")
			}
			return nil
		},
	}
}
