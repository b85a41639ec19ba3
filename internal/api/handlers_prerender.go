package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dgallion1/seorender/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

type prerenderRequest struct {
	TargetURL string   `json:"target_url"`
	Paths     []string `json:"paths,omitempty"`
}

// handlePrerender queues a batch prerender of a running app.
func (s *Server) handlePrerender(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	var req prerenderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		jsonError(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	target := req.TargetURL
	if target == "" {
		target = s.cfg.TargetURL
	}
	if target == "" {
		jsonError(w, "target_url is required", http.StatusBadRequest)
		return
	}
	if u, err := url.Parse(target); err != nil || u.Scheme == "" || u.Host == "" {
		jsonError(w, fmt.Sprintf("target_url must be an absolute URL, got %q", target), http.StatusBadRequest)
		return
	}

	job := pipeline.NewJob(target, req.Paths)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	// A worker may already be processing the job; read its state through
	// the lock.
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   snap.ID,
		"status":   snap.Status,
		"poll_url": fmt.Sprintf("/api/prerender/%s/status", snap.ID),
	})
}

func (s *Server) handlePrerenderStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

// handleCacheFlush invalidates cached pages: everything, or one key via
// ?key=.
func (s *Server) handleCacheFlush(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if key := r.URL.Query().Get("key"); key != "" {
		if err := s.cache.Delete(ctx, key); err != nil {
			jsonError(w, "cache delete failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"deleted": key})
		return
	}
	if err := s.cache.Flush(ctx); err != nil {
		jsonError(w, "cache flush failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"flushed": true})
}
