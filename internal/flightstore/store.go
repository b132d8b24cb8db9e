package flightstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/skyward-analytics/flightpulse/internal/aeroapi"
)

const dateFormat = "2006-01-02"

// ErrNoDataFiles indicates that no stored parquet file matches the requested
// airport and direction.
var ErrNoDataFiles = errors.New("no flight data files found")

// Store reads and writes per-airport flight data under a root directory.
// Parquet files live in <dir>/<AIRPORT>/, raw payload archives in
// <dir>/<AIRPORT>/raw/.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the root data directory.
func (s *Store) Dir() string {
	return s.dir
}

// FileName returns the parquet file name for one airport, direction and day:
// <date>_<AIRPORT>_<direction>.parquet.
func FileName(airport string, direction aeroapi.Direction, date time.Time) string {
	return fmt.Sprintf("%s_%s_%s.parquet", date.Format(dateFormat), strings.ToUpper(airport), direction)
}

// Save writes records as a parquet file and returns the written path.
// Parent directories are created as needed.
func (s *Store) Save(airport string, direction aeroapi.Direction, date time.Time, records []Record) (string, error) {
	dir := filepath.Join(s.dir, strings.ToUpper(airport))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating airport directory: %w", err)
	}

	path := filepath.Join(dir, FileName(airport, direction, date))
	if err := parquet.WriteFile(path, records); err != nil {
		return "", fmt.Errorf("writing parquet file %s: %w", path, err)
	}

	return path, nil
}

// Load reads every record from one parquet file.
func (s *Store) Load(path string) ([]Record, error) {
	records, err := parquet.ReadFile[Record](path)
	if err != nil {
		return nil, fmt.Errorf("reading parquet file %s: %w", path, err)
	}

	return records, nil
}

// Discover returns the path of the most recent stored file for an airport and
// direction. File names start with an ISO date, so the lexicographically last
// match is the newest. Returns ErrNoDataFiles when nothing matches.
func (s *Store) Discover(airport string, direction aeroapi.Direction) (string, error) {
	upper := strings.ToUpper(airport)
	dir := filepath.Join(s.dir, upper)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s %s", ErrNoDataFiles, upper, direction)
		}

		return "", fmt.Errorf("listing %s: %w", dir, err)
	}

	suffix := fmt.Sprintf("_%s_%s.parquet", upper, direction)

	var matches []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}

		matches = append(matches, entry.Name())
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s %s", ErrNoDataFiles, upper, direction)
	}

	slices.Sort(matches)

	return filepath.Join(dir, matches[len(matches)-1]), nil
}

// LoadLatest loads the most recent stored file for an airport and direction.
func (s *Store) LoadLatest(airport string, direction aeroapi.Direction) ([]Record, error) {
	path, err := s.Discover(airport, direction)
	if err != nil {
		return nil, err
	}

	return s.Load(path)
}

// ListAirports returns the airports with at least one stored parquet file,
// sorted ascending.
func (s *Store) ListAirports() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("listing %s: %w", s.dir, err)
	}

	var airports []string

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		files, err := os.ReadDir(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}

		for _, f := range files {
			if strings.HasSuffix(f.Name(), ".parquet") {
				airports = append(airports, entry.Name())

				break
			}
		}
	}

	slices.Sort(airports)

	return airports, nil
}
