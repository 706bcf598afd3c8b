package batch

import (
	"encoding/json"
	"os"

	"softraster/internal/render"
)

// ManifestEntry represents one job in the output manifest.
type ManifestEntry struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
	render.Descriptor
	Error string `json:"error,omitempty"`
}

// WriteManifest writes the results as indented JSON to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:       r.Job.Name(),
			Descriptor: r.Info,
			Error:      r.Error,
		}
		if r.Success {
			entries[i].Image = r.Image
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
