package batch

import (
	"os"

	"github.com/goccy/go-json"
)

// Report summarizes one batch run.
type Report struct {
	Total   int      `json:"total"`
	Failed  int      `json:"failed"`
	Results []Result `json:"results"`
}

// WriteReport writes a JSON run report next to the batch output.
func WriteReport(path string, results []Result) error {
	rep := Report{Total: len(results), Results: results}
	for _, r := range results {
		if !r.Success {
			rep.Failed++
		}
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
