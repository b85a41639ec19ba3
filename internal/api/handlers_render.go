package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dgallion1/seorender/internal/layout"
	"github.com/dgallion1/seorender/internal/page"
	"github.com/dgallion1/seorender/internal/pipeline"
	"github.com/dgallion1/seorender/internal/render"
)

// handleRender serializes a layout JSON body into an HTML fragment.
// ?exclude=Kind1,Kind2 overrides the configured exclusion set.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	root, err := layout.Parse(body)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	renderer := s.renderer
	override := r.URL.Query().Has("exclude")
	if override {
		renderer = render.New(render.Options{
			Excluded: splitKinds(r.URL.Query().Get("exclude")),
			MaxDepth: s.cfg.MaxRenderDepth,
		})
	}

	// Identical layouts produce identical fragments, so repeated crawler
	// hits are served from cache. Overridden exclusion sets bypass it.
	key := "fragment:" + pipeline.ContentHashHex(body)
	if !override {
		if cached, found, err := s.cache.Get(r.Context(), key); err == nil && found {
			writeHTML(w, cached)
			return
		}
	}

	fragment, err := renderer.Render(root)
	if err != nil {
		jsonError(w, err.Error(), renderStatus(err))
		return
	}

	if !override {
		if err := s.cache.Set(r.Context(), key, fragment); err != nil {
			s.log.Warn("cache write failed", "error", err)
		}
	}
	writeHTML(w, fragment)
}

type htmlifyRequest struct {
	Layout  json.RawMessage `json:"layout"`
	Shell   string          `json:"shell"`
	JSONLD  json.RawMessage `json:"jsonld,omitempty"`
	MountID string          `json:"mount_id,omitempty"`
}

// handleHtmlify renders a layout and splices the fragment (and optional
// JSON-LD) into the supplied page shell, returning the full document.
func (s *Server) handleHtmlify(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	var req htmlifyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		jsonError(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Layout) == 0 {
		jsonError(w, "layout is required", http.StatusBadRequest)
		return
	}
	if req.Shell == "" {
		jsonError(w, "shell is required", http.StatusBadRequest)
		return
	}

	root, err := layout.Parse(req.Layout)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	fragment, err := s.renderer.Render(root)
	if err != nil {
		jsonError(w, err.Error(), renderStatus(err))
		return
	}

	mountID := req.MountID
	if mountID == "" {
		mountID = s.cfg.MountID
	}
	full, err := page.Inject(req.Shell, fragment, page.Options{MountID: mountID})
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if len(req.JSONLD) > 0 {
		var jsonld any
		if err := json.Unmarshal(req.JSONLD, &jsonld); err != nil {
			jsonError(w, "invalid jsonld: "+err.Error(), http.StatusBadRequest)
			return
		}
		full, err = page.InjectJSONLD(full, jsonld)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	writeHTML(w, full)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "failed to read body: "+err.Error(), http.StatusRequestEntityTooLarge)
		return nil, false
	}
	return body, true
}

// renderStatus maps serializer failures onto response codes: bad trees are
// the client's problem, not the server's.
func renderStatus(err error) int {
	var unsupported *render.UnsupportedNodeError
	var structural *render.StructuralError
	if errors.As(err, &unsupported) || errors.As(err, &structural) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func splitKinds(csv string) []string {
	kinds := []string{}
	for _, kind := range strings.Split(csv, ",") {
		if kind = strings.TrimSpace(kind); kind != "" {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}
