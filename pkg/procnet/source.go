package procnet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/procfs"
)

var (
	// ErrSourceUnavailable is returned when the sockstat file (or the proc
	// mount holding it) is missing or unreadable.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrReadFailure wraps any I/O or parse error hit while reading.
	ErrReadFailure = errors.New("read failure")
	// ErrEmptyResult is returned when the file was read but held nothing.
	ErrEmptyResult = errors.New("empty result")
)

// Source is the sockstat file under a proc mount point.
type Source struct {
	fs   procfs.FS
	path string
}

// NewSource returns a Source for the proc filesystem mounted at procRoot.
// An empty procRoot means procfs.DefaultMountPoint.
func NewSource(procRoot string) (*Source, error) {
	if procRoot == "" {
		procRoot = procfs.DefaultMountPoint
	}
	fs, err := procfs.NewFS(procRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return &Source{
		fs:   fs,
		path: SockstatPath(procRoot),
	}, nil
}

// SockstatPath returns the sockstat file location under procRoot.
func SockstatPath(procRoot string) string {
	if procRoot == "" {
		procRoot = procfs.DefaultMountPoint
	}
	return filepath.Join(procRoot, "net", "sockstat")
}

// Path is the absolute location of the sockstat file.
func (s *Source) Path() string {
	return s.path
}

// CheckAvailable fails with ErrSourceUnavailable unless the file exists and
// the process may read it.
func (s *Source) CheckAvailable() error {
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	if err := checkReadable(s.path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, s.path, err)
	}
	return nil
}

// Read captures the whole file in one pass.
func (s *Source) Read() (*Snapshot, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResult, s.path)
	}
	return NewSnapshot(string(data)), nil
}

// Snapshot is the raw content of the sockstat file at one point in time.
type Snapshot struct {
	lines []string
}

// NewSnapshot splits raw into lines. Trailing newlines are dropped.
func NewSnapshot(raw string) *Snapshot {
	raw = strings.TrimRight(raw, "\n")
	if raw == "" {
		return &Snapshot{}
	}
	return &Snapshot{lines: strings.Split(raw, "\n")}
}

// Lines returns a copy of the captured lines.
func (s *Snapshot) Lines() []string {
	return append([]string(nil), s.lines...)
}

// Text returns the captured lines joined by newlines.
func (s *Snapshot) Text() string {
	return strings.Join(s.lines, "\n")
}
