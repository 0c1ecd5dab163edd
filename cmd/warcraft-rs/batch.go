package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/pruzko/warcraft-rs/internal/batch"
	"github.com/pruzko/warcraft-rs/internal/config"
	"github.com/pruzko/warcraft-rs/internal/m2"
)

func batchCmd() *cli.Command {
	var (
		configPath  string
		dataDir     string
		outputDir   string
		versionName string
		workers     int64
		verbose     bool
		opName      string
		reportPath  string
	)

	return &cli.Command{
		Name:  "batch",
		Usage: "Validate or convert every model under a directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "JSON config file (flags override it)",
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "directory to scan for .m2 files",
				Destination: &dataDir,
			},
			&cli.StringFlag{
				Name:        "output-dir",
				Aliases:     []string{"o"},
				Usage:       "directory for converted files (defaults to data dir)",
				Destination: &outputDir,
			},
			&cli.StringFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "target expansion for the convert op",
				Destination: &versionName,
			},
			&cli.Int64Flag{
				Name:        "workers",
				Aliases:     []string{"w"},
				Usage:       "worker count (defaults to CPU count)",
				Destination: &workers,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "per-file log output",
				Destination: &verbose,
			},
			&cli.StringFlag{
				Name:        "op",
				Usage:       "validate or convert",
				Value:       "validate",
				Destination: &opName,
			},
			&cli.StringFlag{
				Name:        "report",
				Usage:       "write a JSON run report to this path",
				Destination: &reportPath,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var cfg config.Config
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				cfg = loaded
			}
			cfg.Resolve(config.Flags{
				DataDir:   dataDir,
				OutputDir: outputDir,
				Version:   versionName,
				Workers:   int(workers),
				Verbose:   verbose,
			})

			var op batch.Op
			switch opName {
			case "validate":
				op = batch.OpValidate
			case "convert":
				op = batch.OpConvert
			default:
				return cli.Exit(fmt.Sprintf("error: unknown op %q", opName), 1)
			}

			var target m2.Version
			if op == batch.OpConvert {
				if cfg.TargetVersion == "" {
					return cli.Exit("error: convert op needs --version", 1)
				}
				v, err := m2.VersionFromExpansion(cfg.TargetVersion)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				target = v
			}

			logger, err := buildLogger(cfg.Verbose)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: logger: %v", err), 1)
			}
			defer func() { _ = logger.Sync() }()

			files, err := batch.Discover(cfg.DataDir)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if len(files) == 0 {
				fmt.Printf("no .m2 files under %s\n", cfg.DataDir)
				return nil
			}
			logger.Info("starting batch",
				zap.Int("files", len(files)),
				zap.Int("workers", cfg.Workers),
				zap.String("op", opName))

			results := batch.Run(batch.Config{
				OutputDir: cfg.OutputDir,
				Op:        op,
				Target:    target,
				Workers:   cfg.Workers,
				Logger:    logger,
			}, files)

			failed := 0
			for _, r := range results {
				if !r.Success {
					failed++
				}
			}
			fmt.Printf("processed %d file(s), %d failed\n", len(results), failed)

			if reportPath != "" {
				if err := batch.WriteReport(reportPath, results); err != nil {
					return cli.Exit(fmt.Sprintf("error: write report: %v", err), 1)
				}
				fmt.Printf("report written to %s\n", reportPath)
			}
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d file(s) failed", failed), 1)
			}
			return nil
		},
	}
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}
