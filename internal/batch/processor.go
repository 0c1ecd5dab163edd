package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/pruzko/warcraft-rs/internal/m2"
)

// Op selects what the pool does with each model file.
type Op int

const (
	OpValidate Op = iota
	OpConvert
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir string
	Op        Op
	Target    m2.Version // OpConvert only
	Workers   int
	Logger    *zap.Logger
}

// Result holds the outcome of processing one file.
type Result struct {
	Path     string `json:"path"`
	Success  bool   `json:"success"`
	Findings int    `json:"findings,omitempty"`
	Notes    int    `json:"notes,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Discover walks dir and returns every .m2 model file.
func Discover(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".m2") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: walk %s: %w", dir, err)
	}
	return files, nil
}

// Run processes all files using a worker pool. Files are independent, so
// decode and convert parallelize freely across them.
func Run(cfg Config, files []string) []Result {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					cfg.Logger.Info("progress",
						zap.Int64("done", p),
						zap.Int("total", total),
						zap.Float64("files_per_sec", float64(p)/elapsed))
				}
			}
		}
	}()

	// Worker pool
	fileChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				results[idx] = processFile(cfg, files[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range files {
		fileChan <- i
	}
	close(fileChan)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, path string) Result {
	res := Result{Path: path}

	model, err := m2.LoadModel(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	switch cfg.Op {
	case OpValidate:
		findings := model.Validate()
		res.Findings = len(findings)
		res.Success = len(findings) == 0
		for _, f := range findings {
			cfg.Logger.Warn("validation finding",
				zap.String("path", path),
				zap.String("finding", f.String()))
		}

	case OpConvert:
		converted, notes, err := m2.NewConverter().Convert(model, cfg.Target)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		res.Notes = len(notes)
		for _, n := range notes {
			cfg.Logger.Info("conversion note",
				zap.String("path", path),
				zap.String("note", n))
		}

		outPath := filepath.Join(cfg.OutputDir, filepath.Base(path))
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			res.Error = err.Error()
			return res
		}
		if err := converted.Save(outPath); err != nil {
			res.Error = err.Error()
			return res
		}
		res.Success = true
	}

	return res
}
