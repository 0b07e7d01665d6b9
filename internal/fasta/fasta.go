// Package fasta ingests sequence text in FASTA or raw form.
//
// Input is forgiving: if the text contains a FASTA header the first
// record wins and everything after the second header is ignored;
// otherwise the whole text is treated as one raw sequence. Both paths
// normalize through genome.NewSequence.
package fasta

import (
	"compress/gzip"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/varwatch/varwatch/internal/genome"
)

// Parse extracts a sequence from text. The first FASTA record wins;
// text without a header is taken as a raw sequence.
func Parse(text string) genome.Sequence {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")

	headerAt := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), ">") {
			headerAt = i
			break
		}
	}
	if headerAt == -1 {
		return genome.NewSequence(trimmed)
	}

	// Collect the first record's sequence lines, up to the next header.
	var b strings.Builder
	for _, line := range lines[headerAt+1:] {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, ">") {
			break
		}
		b.WriteString(line)
	}
	return genome.NewSequence(b.String())
}

// ParseBytes decodes raw bytes (UTF-8, falling back to Latin-1) and
// parses the result. Uploaded files go through here so a legacy
// single-byte encoding never rejects a request.
func ParseBytes(data []byte) genome.Sequence {
	return Parse(decodeText(data))
}

// ReadFile loads a sequence from path. Gzip input is detected by magic
// number or a .gz suffix, and "-" reads from stdin.
func ReadFile(path string) (genome.Sequence, error) {
	rc, err := openReader(path)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return ParseBytes(data), nil
}

// decodeText interprets data as UTF-8 when valid, otherwise as Latin-1
// where every byte maps to the code point of the same value.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// openReader opens path for reading, transparently decompressing gzip
// and mapping "-" to stdin.
func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	// Detect gzip by magic number (1F 8B) or by .gz suffix.
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	_, _ = fh.Seek(0, io.SeekStart)
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}
