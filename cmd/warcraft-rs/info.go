package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/pruzko/warcraft-rs/internal/companion"
	"github.com/pruzko/warcraft-rs/internal/m2"
)

// modelReport is the JSON shape of `info --json`.
type modelReport struct {
	Path        string         `json:"path"`
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	HeaderValue uint32         `json:"header_value"`
	Flags       uint32         `json:"flags"`
	Vertices    int            `json:"vertices"`
	Bones       int            `json:"bones"`
	Sequences   int            `json:"sequences"`
	Textures    int            `json:"textures"`
	Materials   int            `json:"materials"`
	Chunks      []chunkReport  `json:"chunks,omitempty"`
	Unknown     []string       `json:"unknown_chunks,omitempty"`
	Companions  *companionList `json:"companions,omitempty"`
}

type chunkReport struct {
	Tag     string `json:"tag"`
	Entries int    `json:"entries"`
}

type companionList struct {
	Skins []string `json:"skins"`
	Anims []string `json:"anims"`
}

func infoCmd() *cli.Command {
	var (
		detailed bool
		asJSON   bool
	)

	return &cli.Command{
		Name:      "info",
		Usage:     "Print model header and chunk summary",
		ArgsUsage: "<model.m2>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "detailed",
				Aliases:     []string{"d"},
				Usage:       "include per-chunk entry counts and companion files",
				Destination: &detailed,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "emit machine-readable JSON",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return cli.Exit("error: model path required", 1)
			}

			model, err := m2.LoadModel(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load %s: %v", path, err), 1)
			}

			rep := buildReport(path, model, detailed)
			if asJSON {
				out, err := json.MarshalIndent(rep, "", "  ")
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: encode report: %v", err), 1)
				}
				fmt.Println(string(out))
				return nil
			}

			printReport(rep, detailed)
			return nil
		},
	}
}

func buildReport(path string, model *m2.Model, detailed bool) modelReport {
	rep := modelReport{
		Path:        path,
		Name:        model.Header.Name,
		Version:     model.Header.Version.String(),
		HeaderValue: model.Header.Version.HeaderVersion(),
		Flags:       model.Header.Flags,
	}
	if c := model.Vertices(); c != nil {
		rep.Vertices = len(c.Vertices)
	}
	if c := model.Bones(); c != nil {
		rep.Bones = len(c.Bones)
	}
	if c := model.Sequences(); c != nil {
		rep.Sequences = len(c.Sequences)
	}
	if c := model.Textures(); c != nil {
		rep.Textures = len(c.Textures)
	}
	if c := model.Materials(); c != nil {
		rep.Materials = len(c.Materials)
	}
	if !detailed {
		return rep
	}

	for tag, ch := range model.Chunks {
		rep.Chunks = append(rep.Chunks, chunkReport{Tag: tag.String(), Entries: chunkEntries(ch)})
	}
	sortChunkReports(rep.Chunks)
	for _, raw := range model.Unknown {
		rep.Unknown = append(rep.Unknown, fmt.Sprintf("%s (%d bytes)", raw.Raw.String(), len(raw.Payload)))
	}

	idx := companion.BuildIndex(filepath.Dir(path))
	skins := idx.Skins(path)
	anims := idx.Anims(path)
	if len(skins) > 0 || len(anims) > 0 {
		rep.Companions = &companionList{Skins: skins, Anims: anims}
	}
	return rep
}

func printReport(rep modelReport, detailed bool) {
	fmt.Printf("Model:    %s\n", rep.Path)
	fmt.Printf("Name:     %s\n", rep.Name)
	fmt.Printf("Version:  %s (header %d)\n", rep.Version, rep.HeaderValue)
	fmt.Printf("Flags:    0x%08X\n", rep.Flags)
	fmt.Printf("Vertices: %d  Bones: %d  Sequences: %d  Textures: %d  Materials: %d\n",
		rep.Vertices, rep.Bones, rep.Sequences, rep.Textures, rep.Materials)

	if !detailed {
		return
	}

	fmt.Println("\nChunks:")
	for _, ch := range rep.Chunks {
		fmt.Printf("  %s  %d entries\n", ch.Tag, ch.Entries)
	}
	for _, u := range rep.Unknown {
		fmt.Printf("  %s (unknown, preserved)\n", u)
	}
	if rep.Companions != nil {
		fmt.Println("\nCompanion files:")
		for _, s := range rep.Companions.Skins {
			fmt.Printf("  skin  %s\n", s)
		}
		for _, a := range rep.Companions.Anims {
			fmt.Printf("  anim  %s\n", a)
		}
	}
}

func sortChunkReports(reps []chunkReport) {
	sort.Slice(reps, func(i, j int) bool { return reps[i].Tag < reps[j].Tag })
}

func chunkEntries(ch m2.Chunk) int {
	switch c := ch.(type) {
	case *m2.BoneChunk:
		return len(c.Bones)
	case *m2.SequenceChunk:
		return len(c.Sequences)
	case *m2.VertexChunk:
		return len(c.Vertices)
	case *m2.TextureChunk:
		return len(c.Textures)
	case *m2.MaterialChunk:
		return len(c.Materials)
	case *m2.AttachmentChunk:
		return len(c.Attachments)
	case *m2.EventChunk:
		return len(c.Events)
	case *m2.LightChunk:
		return len(c.Lights)
	case *m2.CameraChunk:
		return len(c.Cameras)
	case *m2.ColorAnimationChunk:
		return len(c.Entries)
	case *m2.TransparencyChunk:
		return len(c.Tracks)
	case *m2.TextureAnimationChunk:
		return len(c.Entries)
	case *m2.TextureTransformChunk:
		return len(c.Transforms)
	case *m2.ParticleChunk:
		return len(c.Emitters)
	case *m2.RibbonChunk:
		return len(c.Emitters)
	case *m2.PhysicsChunk:
		return len(c.Joints)
	case *m2.FileIDChunk:
		return len(c.IDs)
	case *m2.AnimFileIDChunk:
		return len(c.Entries)
	case *m2.ExtParticleChunk:
		return len(c.Entries)
	case *m2.WaterfallChunk:
		return len(c.Params)
	default:
		return 1
	}
}
