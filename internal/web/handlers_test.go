package web

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/varwatch/varwatch/internal/analysis"
	"github.com/varwatch/varwatch/internal/config"
	"github.com/varwatch/varwatch/internal/errors"
)

func setupTest(t *testing.T) *Handlers {
	t.Helper()

	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		t.Fatalf("template sub-FS: %v", err)
	}
	renderer := NewRenderer(templateSub, "test")

	return &Handlers{
		cfg:      config.DefaultConfig(),
		renderer: renderer,
		docsHTML: renderMarkdown(docsMarkdown),
	}
}

// postForm submits urlencoded analyze fields directly to the handler.
func postForm(t *testing.T, h *Handlers, fields url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/analyze", strings.NewReader(fields.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleAnalyze(rec, req)
	return rec
}

// postMultipart submits a multipart analyze form. files maps a field
// name to {filename, content}.
func postMultipart(t *testing.T, h *Handlers, fields map[string]string, files map[string][2]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			t.Fatalf("WriteField(%q): %v", name, err)
		}
	}
	for name, file := range files {
		fw, err := mw.CreateFormFile(name, file[0])
		if err != nil {
			t.Fatalf("CreateFormFile(%q): %v", name, err)
		}
		if _, err := fw.Write([]byte(file[1])); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.HandleAnalyze(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) *analysis.Result {
	t.Helper()
	var res analysis.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	return &res
}

// --- HandleIndex ---

func TestHandleIndex(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	h.HandleIndex(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"ref_text", "sample_text", "ref_file", "sample_file", "Analyze"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in index page", want)
		}
	}
	if !strings.Contains(body, "10,000") {
		t.Error("expected formatted sequence limit in index page")
	}
}

// --- HandleAnalyze ---

func TestHandleAnalyze_Substitution(t *testing.T) {
	h := setupTest(t)

	rec := postForm(t, h, url.Values{"ref_text": {"ATGC"}, "sample_text": {"ATCC"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	res := decodeResult(t, rec)
	if len(res.Variants) != 1 {
		t.Fatalf("variants = %d, want 1", len(res.Variants))
	}
	v := res.Variants[0]
	if v.Pos != 3 || v.Ref != "G" || v.Alt != "C" || string(v.Type) != "substitution" {
		t.Errorf("variant = %+v, want pos 3 G>C substitution", v)
	}
	if res.Summary.RiskScore != 50 {
		t.Errorf("risk_score = %d, want 50", res.Summary.RiskScore)
	}
}

func TestHandleAnalyze_IdenticalPairSerializesEmptyList(t *testing.T) {
	h := setupTest(t)

	rec := postForm(t, h, url.Values{"ref_text": {"ATGC"}, "sample_text": {"ATGC"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"variants":[]`) {
		t.Errorf("expected empty variants list, got %s", body)
	}
}

func TestHandleAnalyze_MissingInput(t *testing.T) {
	h := setupTest(t)

	tests := []struct {
		name   string
		fields url.Values
	}{
		{"no fields", url.Values{}},
		{"empty reference", url.Values{"sample_text": {"ATGC"}}},
		{"empty sample", url.Values{"ref_text": {"ATGC"}}},
		{"whitespace only", url.Values{"ref_text": {"  \n "}, "sample_text": {"ATGC"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(t, h, tt.fields)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var resp map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode JSON: %v", err)
			}
			if len(resp) != 1 {
				t.Errorf("error body = %v, want single error field", resp)
			}
			if resp["error"] != errors.MissingInputMessage {
				t.Errorf("error = %q, want %q", resp["error"], errors.MissingInputMessage)
			}
		})
	}
}

func TestHandleAnalyze_FastaTextInput(t *testing.T) {
	h := setupTest(t)

	rec := postForm(t, h, url.Values{
		"ref_text":    {">chr1 demo\natgc\n>chr2\nGGGG"},
		"sample_text": {"at\ncc"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	res := decodeResult(t, rec)
	// First record only: ATGC vs ATCC.
	if res.Summary.ReferenceLength != 4 {
		t.Errorf("reference_length = %d, want 4", res.Summary.ReferenceLength)
	}
	if res.Summary.Substitutions != 1 {
		t.Errorf("substitutions = %d, want 1", res.Summary.Substitutions)
	}
}

func TestHandleAnalyze_UploadWinsOverTextarea(t *testing.T) {
	h := setupTest(t)

	rec := postMultipart(t, h,
		map[string]string{"ref_text": "GGGG", "sample_text": "ATCC"},
		map[string][2]string{"ref_file": {"ref.fasta", ">chr1\nATGC\n"}},
	)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	res := decodeResult(t, rec)
	// The uploaded ATGC, not the pasted GGGG, is the reference.
	if len(res.Variants) != 1 || res.Variants[0].Pos != 3 {
		t.Errorf("variants = %+v, want single substitution at pos 3", res.Variants)
	}
}

func TestHandleAnalyze_EmptyUploadDoesNotFallBack(t *testing.T) {
	h := setupTest(t)

	// A selected file with empty content wins over the textarea and
	// yields a missing-input error.
	rec := postMultipart(t, h,
		map[string]string{"ref_text": "ATGC", "sample_text": "ATCC"},
		map[string][2]string{"ref_file": {"empty.fasta", ""}},
	)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleAnalyze_SequenceTooLarge(t *testing.T) {
	h := setupTest(t)
	h.cfg = &config.Config{MaxSequenceChars: 8}

	rec := postForm(t, h, url.Values{
		"ref_text":    {"ATGCATGCA"}, // 9 chars
		"sample_text": {"ATGC"},
	})

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	if !strings.Contains(resp["error"], "exceeds maximum size") {
		t.Errorf("error = %q, want size message", resp["error"])
	}
}

// --- Server routes and middleware ---

func TestServerRoutes(t *testing.T) {
	srv := NewServer(config.DefaultConfig(), "test", "127.0.0.1", 0)

	tests := []struct {
		method   string
		path     string
		status   int
		contains string
	}{
		{"GET", "/", http.StatusOK, "ref_text"},
		{"GET", "/docs", http.StatusOK, "Risk score"},
		{"GET", "/health", http.StatusOK, `"status":"ok"`},
		{"GET", "/static/style.css", http.StatusOK, ""},
		{"GET", "/static/app.js", http.StatusOK, ""},
		{"GET", "/no-such-page", http.StatusNotFound, "404"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, req)

		if rec.Code != tt.status {
			t.Errorf("%s %s status = %d, want %d", tt.method, tt.path, rec.Code, tt.status)
			continue
		}
		if tt.contains != "" && !strings.Contains(rec.Body.String(), tt.contains) {
			t.Errorf("%s %s body missing %q", tt.method, tt.path, tt.contains)
		}
	}
}

func TestSecurityHeadersAndRequestID(t *testing.T) {
	srv := NewServer(config.DefaultConfig(), "test", "127.0.0.1", 0)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	headers := map[string]string{
		"Content-Security-Policy": "default-src 'self'; script-src 'self'; style-src 'self'",
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
	}
	for name, want := range headers {
		if got := rec.Header().Get(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}

	// 26-character Crockford base32 ULID.
	if id := rec.Header().Get("X-Request-ID"); len(id) != 26 {
		t.Errorf("X-Request-ID = %q, want 26-char ULID", id)
	}
}

func TestAnalyzeRateLimited(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.RatePerSecond = 0.001 // effectively no refill during the test
	cfg.RateBurst = 1
	srv := NewServer(cfg, "test", "127.0.0.1", 0)

	send := func() *httptest.ResponseRecorder {
		form := url.Values{"ref_text": {"ATGC"}, "sample_text": {"ATGC"}}
		req := httptest.NewRequest("POST", "/analyze", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := send(); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}

	rec := send()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	if resp["error"] == "" {
		t.Error("expected error message in 429 body")
	}
}

// --- Helper functions ---

func TestFormatChars(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{10000, "10,000"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		if got := formatChars(tt.n); got != tt.expected {
			t.Errorf("formatChars(%d) = %q, want %q", tt.n, got, tt.expected)
		}
	}
}
