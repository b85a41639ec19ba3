package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/seorender/internal/appclient"
	"github.com/dgallion1/seorender/internal/cache"
	"github.com/dgallion1/seorender/internal/layout"
	"github.com/dgallion1/seorender/internal/page"
	"github.com/dgallion1/seorender/internal/render"
)

// Worker processes a single prerender job: fetch the target app's layout,
// serialize it, and splice the fragment into each requested page shell.
type Worker struct {
	renderer  *render.Renderer
	cache     cache.Store
	log       *slog.Logger
	mountID   string
	exportDir string
}

func NewWorker(renderer *render.Renderer, store cache.Store, log *slog.Logger, mountID, exportDir string) *Worker {
	return &Worker{
		renderer:  renderer,
		cache:     store,
		log:       log,
		mountID:   mountID,
		exportDir: exportDir,
	}
}

// Process runs the full prerender pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "target", job.TargetURL)

	client := appclient.New(job.TargetURL)
	defer client.Close()

	// Phase 1: Fetch the layout.
	job.SetStatus(StatusFetching, "layout")
	raw, err := fetchWithRetry(ctx, log, "layout", func() ([]byte, error) {
		return client.FetchLayout(ctx)
	})
	if err != nil {
		log.Error("layout fetch failed", "error", err)
		job.AddError(fmt.Sprintf("fetch layout: %s", err))
		job.SetStatus(StatusFailed, "fetching")
		return
	}

	root, err := layout.Parse(raw)
	if err != nil {
		log.Error("layout parse failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "fetching")
		return
	}

	// Phase 2: Serialize once; the fragment is shared by every page.
	job.SetStatus(StatusRendering, "rendering")
	fragment, err := w.renderer.Render(root)
	if err != nil {
		log.Error("render failed", "error", err)
		job.AddError(fmt.Sprintf("render: %s", err))
		job.SetStatus(StatusFailed, "rendering")
		return
	}

	paths := job.Paths()
	if len(paths) == 0 {
		paths = []string{"/"}
	}
	job.SetTotalPages(len(paths))

	// Phase 3: Inject into each page shell.
	rendered := 0
	for _, path := range paths {
		if ctx.Err() != nil {
			job.AddError("canceled")
			break
		}
		if err := w.renderPage(ctx, log, client, job, path, fragment); err != nil {
			log.Error("page failed", "path", path, "error", err)
			job.AddError(fmt.Sprintf("%s: %s", path, err))
			continue
		}
		job.IncrPagesRendered()
		rendered++
	}

	switch {
	case rendered == len(paths):
		job.SetStatus(StatusCompleted, "done")
	case rendered > 0:
		job.SetStatus(StatusPartial, "done")
	default:
		job.SetStatus(StatusFailed, "rendering")
	}
	log.Info("prerender finished", "pages", rendered, "total", len(paths))
}

func (w *Worker) renderPage(ctx context.Context, log *slog.Logger, client *appclient.Client, job *Job, path, fragment string) error {
	shell, err := fetchWithRetry(ctx, log, path, func() ([]byte, error) {
		s, err := client.FetchShell(ctx, path)
		return []byte(s), err
	})
	if err != nil {
		return fmt.Errorf("fetch shell: %w", err)
	}

	full, err := page.Inject(string(shell), fragment, page.Options{MountID: w.mountID})
	if err != nil {
		return err
	}

	if err := w.cache.Set(ctx, PageKey(job.TargetURL, path), full); err != nil {
		// Cache failures degrade performance, not correctness.
		log.Warn("cache write failed", "path", path, "error", err)
	}

	if w.exportDir != "" {
		if err := writeExport(w.exportDir, path, full); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	return nil
}

func fetchWithRetry(ctx context.Context, log *slog.Logger, what string, fetch func() ([]byte, error)) ([]byte, error) {
	var body []byte
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		body, lastErr = fetch()
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable fetch error", "what", what, "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return body, lastErr
}

// PageKey is the cache key for a prerendered page.
func PageKey(targetURL, path string) string {
	return strings.TrimRight(targetURL, "/") + path
}

// writeExport stores a page under the export dir: "/" becomes index.html,
// "/about" becomes about/index.html.
func writeExport(dir, path, html string) error {
	dest := filepath.Join(dir, strings.Trim(path, "/"), "index.html")
	rel, err := filepath.Rel(dir, dest)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path %q escapes export dir", path)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte(html), 0o644)
}
