package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/pruzko/warcraft-rs/internal/m2"
)

func convertCmd() *cli.Command {
	var versionName string

	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a model to another expansion version",
		ArgsUsage: "<input.m2> <output.m2>",
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

			model, err := m2.LoadModel(in)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load %s: %v", in, err), 1)
			}

			converted, notes, err := m2.NewConverter().Convert(model, target)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: convert %s to %s: %v", in, target, err), 1)
			}
			for _, note := range notes {
				fmt.Println(note)
			}

			if err := converted.Save(out); err != nil {
				return cli.Exit(fmt.Sprintf("error: save %s: %v", out, err), 1)
			}
			fmt.Printf("%s -> %s (%s)\n", in, out, target)
			return nil
		},
	}
}
