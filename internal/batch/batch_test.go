package batch

import (
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softraster/internal/mathutil"
	"softraster/internal/pixel"
	"softraster/internal/postprocess"
	"softraster/internal/scene"
	"softraster/internal/texture"
)

func TestJobs(t *testing.T) {
	jobs := Jobs([]int{1, 4})
	require.Len(t, jobs, 2*2*3)

	assert.Equal(t, Job{SampleRate: 1, PSM: texture.PixelNearest, LSM: texture.LevelZero}, jobs[0])
	assert.Equal(t, Job{SampleRate: 4, PSM: texture.PixelBilinear, LSM: texture.LevelLinear}, jobs[len(jobs)-1])
	assert.Equal(t, "rate04_bilinear_trilinear", jobs[len(jobs)-1].Name())

	names := map[string]bool{}
	for _, j := range jobs {
		names[j.Name()] = true
	}
	assert.Len(t, names, len(jobs))
}

func testConfig(t *testing.T) Config {
	doc := &scene.Document{
		Width:  10,
		Height: 10,
		Children: []scene.Shape{&scene.Rect{
			Size:  mathutil.V2(10, 10),
			Style: scene.Style{Fill: pixel.Black},
		}},
	}
	return Config{
		Doc:        doc,
		View:       scene.NewView(doc.Width, doc.Height),
		Width:      32,
		Height:     32,
		OutputDir:  t.TempDir(),
		Format:     postprocess.FormatPNG,
		KeepFrames: true,
		Workers:    3,
	}
}

func TestRunWritesEveryJob(t *testing.T) {
	cfg := testConfig(t)
	jobs := Jobs([]int{1, 4, 9})
	results := Run(cfg, jobs)

	require.Len(t, results, len(jobs))
	for i, r := range results {
		require.True(t, r.Success, r.Error)
		assert.Equal(t, jobs[i], r.Job, "results keep job order")
		assert.Equal(t, jobs[i].SampleRate, r.Info.SampleRate)
		assert.FileExists(t, filepath.Join(cfg.OutputDir, r.Image))
		require.NotNil(t, r.Frame)
		// the canvas center is covered by the black rect
		assert.Equal(t, uint8(0), r.Frame.NRGBAAt(16, 16).R)
	}
}

func TestRunRejectsBadRate(t *testing.T) {
	cfg := testConfig(t)
	results := Run(cfg, []Job{{SampleRate: 3}})

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "sample rate")
}

func TestRunWithZoom(t *testing.T) {
	cfg := testConfig(t)
	cfg.Width, cfg.Height = 100, 100
	cfg.Zoom = &image.Point{X: 50, Y: 50}
	results := Run(cfg, Jobs([]int{1})[:1])

	require.True(t, results[0].Success, results[0].Error)
	// 100px allows a 1x inset of 32px in the top-right corner whose
	// first row is brightened
	assert.Equal(t, uint8(76), results[0].Frame.NRGBAAt(99, 0).R)
}

func TestWriteManifest(t *testing.T) {
	results := []Result{
		{Job: Job{SampleRate: 4}, Image: "a.png", Success: true},
		{Job: Job{SampleRate: 3}, Image: "b.png", Error: "boom"},
	}
	results[0].Info.SampleRate = 4

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, WriteManifest(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(data, &entries))

	require.Len(t, entries, 2)
	assert.Equal(t, "rate04_nearest_zero", entries[0]["name"])
	assert.Equal(t, "a.png", entries[0]["image"])
	assert.Equal(t, float64(4), entries[0]["sample_rate"])
	assert.NotContains(t, entries[0], "error")
	assert.NotContains(t, entries[1], "image")
	assert.Equal(t, "boom", entries[1]["error"])
}
