package web

import (
	"html/template"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/varwatch/varwatch/internal/analysis"
	"github.com/varwatch/varwatch/internal/config"
	"github.com/varwatch/varwatch/internal/errors"
	"github.com/varwatch/varwatch/internal/fasta"
	"github.com/varwatch/varwatch/internal/genome"
)

// maxFormMemory bounds the in-memory portion of multipart parsing;
// larger uploads spill to temp files.
const maxFormMemory = 32 << 20

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	cfg      *config.Config
	renderer *Renderer
	docsHTML template.HTML
}

// HandleIndex handles GET / — the paste-and-compare form.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "index", IndexPageData{
		PageData: PageData{
			Title:   "Analyze",
			Version: h.renderer.version,
			Nav:     "home",
		},
		MaxSequenceChars: h.cfg.MaxSequenceChars,
	})
}

// HandleAnalyze handles POST /analyze — compare the submitted pair and
// answer JSON. For each side an uploaded file takes precedence over the
// matching textarea.
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := parseForm(r); err != nil {
		writeError(w, err)
		return
	}

	ref, err := readSequenceField(r, "ref_file", "ref_text")
	if err != nil {
		writeError(w, err)
		return
	}
	sample, err := readSequenceField(r, "sample_file", "sample_text")
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := analysis.Analyze(h.cfg, analysis.Input{Reference: ref, Sample: sample})
	if err != nil {
		writeError(w, err)
		return
	}

	log.Printf("analyze request_id=%s variants=%d risk=%d duration=%s",
		requestIDFrom(r.Context()), result.Summary.TotalVariants,
		result.Summary.RiskScore, time.Since(start).Round(time.Millisecond))

	renderJSON(w, http.StatusOK, result)
}

// HandleDocs handles GET /docs — the rendered methodology page.
func (h *Handlers) HandleDocs(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "docs", DocsPageData{
		PageData: PageData{
			Title:   "Methodology",
			Version: h.renderer.version,
			Nav:     "docs",
		},
		Content: h.docsHTML,
	})
}

// HandleHealth handles GET /health — liveness probe.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.renderer.version,
	})
}

// HandleNotFound renders the branded 404 page for unmatched paths.
func (h *Handlers) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPageStatus(w, http.StatusNotFound, "error", ErrorPageData{
		PageData: PageData{
			Title:   "Not found",
			Version: h.renderer.version,
		},
		StatusCode: http.StatusNotFound,
		Message:    "The page you requested does not exist.",
	})
}

// parseForm parses the request body as multipart when possible, falling
// back to a plain urlencoded form.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxFormMemory)
	if err == nil || err == http.ErrNotMultipart {
		return nil
	}
	return errors.NewInvalidRequest("invalid form data")
}

// readSequenceField resolves one side of the pair. A file part with a
// filename wins over the textarea, even when its content is empty.
func readSequenceField(r *http.Request, fileField, textField string) (genome.Sequence, error) {
	if r.MultipartForm != nil {
		if fhs := r.MultipartForm.File[fileField]; len(fhs) > 0 && fhs[0].Filename != "" {
			f, err := fhs[0].Open()
			if err != nil {
				return "", errors.NewInvalidRequest("could not read uploaded file")
			}
			defer f.Close()

			data, err := io.ReadAll(f)
			if err != nil {
				return "", errors.NewInvalidRequest("could not read uploaded file")
			}
			return fasta.ParseBytes(data), nil
		}
	}
	return fasta.Parse(r.FormValue(textField)), nil
}
