package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mandelbox-renderer/internal/config"
)

// Report is written next to the primary output after a run.
type Report struct {
	Created time.Time     `json:"created"`
	Config  config.Config `json:"config"`
	Results []Result      `json:"results"`
}

// ReportPath returns "<output without extension>.json".
func ReportPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".json"
}

// WriteReport writes the run report as indented JSON.
func WriteReport(path string, cfg config.Config, results []Result) error {
	data, err := json.MarshalIndent(Report{
		Created: time.Now().UTC(),
		Config:  cfg,
		Results: results,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
