package batch

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"softraster/internal/postprocess"
	"softraster/internal/render"
	"softraster/internal/scene"
	"softraster/internal/texture"
)

// Config holds the shared, read-only inputs of a batch run.
type Config struct {
	Doc       *scene.Document
	View      *scene.View
	Width     int
	Height    int
	OutputDir string
	Format    postprocess.Format
	// Zoom, when set, adds a magnified inset around that screen pixel.
	Zoom *image.Point
	// KeepFrames retains every rendered frame in its Result.
	KeepFrames bool
	Workers    int
}

// Job is one combination of sampling settings.
type Job struct {
	SampleRate int
	PSM        texture.PixelSampleMethod
	LSM        texture.LevelSampleMethod
}

// Name returns a file-friendly job name such as "rate04_bilinear_trilinear".
func (j Job) Name() string {
	return fmt.Sprintf("rate%02d_%s_%s", j.SampleRate, j.PSM.Name(), j.LSM.Name())
}

// Jobs enumerates every rate with every pixel and level sampling method,
// rate-major.
func Jobs(rates []int) []Job {
	jobs := make([]Job, 0, len(rates)*len(texture.PixelSampleMethods)*len(texture.LevelSampleMethods))
	for _, r := range rates {
		for _, psm := range texture.PixelSampleMethods {
			for _, lsm := range texture.LevelSampleMethods {
				jobs = append(jobs, Job{SampleRate: r, PSM: psm, LSM: lsm})
			}
		}
	}
	return jobs
}

// Result holds the outcome of one job.
type Result struct {
	Job     Job
	Image   string // path relative to OutputDir
	Info    render.Descriptor
	Frame   *image.NRGBA
	Success bool
	Error   string
}

// Run renders all jobs on a worker pool. Every job gets its own Session,
// so workers share only the read-only document, view and textures.
// Results come back in job order.
func Run(cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()
	log := render.Logger()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Info("batch: progress", "done", p, "total", total, "jobs_per_sec", rate)
				}
			}
		}
	}()

	workers := max(cfg.Workers, 1)
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	log.Info("batch: finished", "jobs", total, "elapsed", time.Since(start))
	return results
}

func processJob(cfg Config, job Job) Result {
	res := Result{Job: job}

	s := render.NewSession(cfg.Width, cfg.Height)
	if err := s.SetSampleRate(job.SampleRate); err != nil {
		res.Error = err.Error()
		return res
	}
	s.SetPixelSampleMethod(job.PSM)
	s.SetLevelSampleMethod(job.LSM)
	res.Info = s.Descriptor()

	s.Redraw(cfg.Doc, cfg.View)
	img := s.Image()
	if cfg.Zoom != nil {
		img = postprocess.ZoomInset(img, cfg.Zoom.X, cfg.Zoom.Y)
	}
	if cfg.KeepFrames {
		res.Frame = img
	}

	res.Image = job.Name() + cfg.Format.Ext()
	if err := postprocess.WriteFile(filepath.Join(cfg.OutputDir, res.Image), img); err != nil {
		render.Logger().Warn("batch: write failed", "job", job.Name(), "err", err)
		res.Error = err.Error()
		return res
	}

	res.Success = true
	return res
}
