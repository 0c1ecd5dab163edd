package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/pruzko/warcraft-rs/internal/m2"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check cross-chunk references and report findings",
		ArgsUsage: "<model.m2>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return cli.Exit("error: model path required", 1)
			}

			model, err := m2.LoadModel(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load %s: %v", path, err), 1)
			}

			findings := model.Validate()
			if len(findings) == 0 {
				fmt.Printf("%s: ok\n", path)
				return nil
			}

			for _, f := range findings {
				fmt.Printf("%s: %s\n", path, f)
			}
			return cli.Exit(fmt.Sprintf("%d finding(s)", len(findings)), 1)
		},
	}
}
