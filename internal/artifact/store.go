package artifact

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vkm-labs/viewgen/pkg/viewgen"
)

// StampStatus classifies what ReadFingerprint found at the artifact path.
type StampStatus int

const (
	// StampFound means the first line carried the marker; the fingerprint
	// was extracted.
	StampFound StampStatus = iota

	// StampEmpty means the file exists but its first line has no
	// recognizable stamp. Treated as definitely stale.
	StampEmpty

	// StampMissing means the artifact file does not exist.
	StampMissing
)

// String returns a human-readable status label.
func (s StampStatus) String() string {
	switch s {
	case StampFound:
		return "stamped"
	case StampEmpty:
		return "unstamped"
	case StampMissing:
		return "missing"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Store is the artifact persistence contract. The orchestrator is tested
// against scripted implementations.
type Store interface {
	// ReadFingerprint reads only the first line of the artifact and returns
	// the stamped fingerprint if the line carries the reserved marker.
	// A missing file or an unrecognizable first line is reported through
	// StampStatus, not as an error; errors are reserved for I/O failures.
	ReadFingerprint(path string) (string, StampStatus, error)

	// Write overwrites the artifact atomically with the marker line followed
	// by the generated body.
	Write(path, fingerprint, body string) error

	// Touch updates the artifact's modification time without altering
	// content, for callers whose build system keys freshness off mtime.
	Touch(path string) error
}

// FileStore implements Store against the OS filesystem.
// It is a zero-size type, safe for concurrent use as long as each invocation
// targets a distinct artifact path.
type FileStore struct{}

// NewFileStore creates a new OS-backed artifact store.
func NewFileStore() FileStore {
	return FileStore{}
}

// ReadFingerprint implements Store. Only the first line is read; the cost is
// O(one line) regardless of artifact size.
func (s FileStore) ReadFingerprint(path string) (string, StampStatus, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", StampMissing, nil
		}
		return "", StampMissing, fmt.Errorf("failed to open artifact %s: %w: %w", path, err, viewgen.ErrArtifactIO)
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", StampEmpty, fmt.Errorf("failed to read artifact %s: %w: %w", path, err, viewgen.ErrArtifactIO)
	}
	if line == "" {
		// Empty file.
		return "", StampEmpty, nil
	}

	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, viewgen.FingerprintMarker) {
		return "", StampEmpty, nil
	}

	stamp := line[len(viewgen.FingerprintMarker):]
	if stamp == "" {
		return "", StampEmpty, nil
	}
	return stamp, StampFound, nil
}

// Write implements Store. The artifact is written to a temp file in the
// target directory and renamed into place, so readers never observe a
// partially written file.
func (s FileStore) Write(path, fingerprint, body string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory %s: %w: %w", dir, err, viewgen.ErrArtifactIO)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact in %s: %w: %w", dir, err, viewgen.ErrArtifactIO)
	}
	tmpPath := tmp.Name()

	// Remove the temp file on any failure path below.
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write artifact %s: %w: %w", path, err, viewgen.ErrArtifactIO)
	}

	// CreateTemp creates 0600; the artifact is a regular build output and
	// keeps the conventional mode after the rename.
	if err := tmp.Chmod(0o644); err != nil {
		return cleanup(err)
	}

	if _, err := tmp.WriteString(viewgen.FingerprintMarker + fingerprint + "\n"); err != nil {
		return cleanup(err)
	}
	if _, err := tmp.WriteString(body); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp artifact %s: %w: %w", tmpPath, err, viewgen.ErrArtifactIO)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace artifact %s: %w: %w", path, err, viewgen.ErrArtifactIO)
	}
	return nil
}

// Touch implements Store.
func (s FileStore) Touch(path string) error {
	now := time.Now()
	if err := os.Chtimes(path, now, now); err != nil {
		return fmt.Errorf("failed to touch artifact %s: %w: %w", path, err, viewgen.ErrArtifactIO)
	}
	return nil
}
