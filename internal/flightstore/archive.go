package flightstore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pierrec/lz4/v4"

	"github.com/skyward-analytics/flightpulse/internal/aeroapi"
)

// ArchiveRaw writes one raw API payload as an lz4-compressed file under
// <dir>/<AIRPORT>/raw/ and returns the written path. The window index keeps
// the 12 payloads of one ingestion day apart.
func (s *Store) ArchiveRaw(airport string, direction aeroapi.Direction, date time.Time, window int, payload []byte) (string, error) {
	dir := filepath.Join(s.dir, strings.ToUpper(airport), "raw")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating raw archive directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s_%02d.json.lz4", date.Format(dateFormat), strings.ToUpper(airport), direction, window)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating archive file: %w", err)
	}

	zw := lz4.NewWriter(f)

	_, werr := zw.Write(payload)
	cerr := errors.Join(zw.Close(), f.Close())

	if err := errors.Join(werr, cerr); err != nil {
		return "", fmt.Errorf("writing archive file %s: %w", path, err)
	}

	return path, nil
}

// ReadArchive decompresses one archived payload.
func ReadArchive(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer

	zr := lz4.NewReader(f)
	if _, err := io.Copy(&buf, zr); err != nil {
		return nil, fmt.Errorf("reading archive file %s: %w", path, err)
	}

	return buf.Bytes(), nil
}
