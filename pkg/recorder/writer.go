package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"

	"github.com/optibench/go-sequential-raytracer/pkg/tracer"
)

// Manifest describes a recorded trace session so tooling can locate the
// artefacts without guessing filenames
type Manifest struct {
	Version      int    `json:"version"`
	System       string `json:"system"`
	CreatedAt    string `json:"created_at"`
	PathsFile    string `json:"paths_file"`
	WarningsFile string `json:"warnings_file"`
	PathCount    int    `json:"path_count"`
	WarningCount int    `json:"warning_count"`
}

const (
	manifestName = "manifest.json"
	pathsName    = "paths.zst"
	warningsName = "warnings.snappy"
)

// Writer persists one traced session to disk: ray paths as a zstd
// stream (they dominate the volume) and warnings as a lighter snappy
// stream, both JSON lines. The tracer itself never touches the
// filesystem; recording is strictly a post-trace concern.
type Writer struct {
	dir          string
	system       string
	now          func() time.Time
	pathFile     *os.File
	pathStream   *zstd.Encoder
	pathEnc      *json.Encoder
	warnFile     *os.File
	warnStream   *snappy.Writer
	warnEnc      *json.Encoder
	pathCount    int
	warningCount int
}

// NewWriter prepares the session directory and opens compressed sinks
func NewWriter(root, systemName string, clock func() time.Time) (*Writer, error) {
	if root == "" {
		return nil, fmt.Errorf("recorder root must be provided")
	}
	if clock == nil {
		clock = time.Now
	}

	created := clock().UTC()
	dir := filepath.Join(root, fmt.Sprintf("%s-%s", systemName, created.Format("20060102T150405Z")))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	pathFile, err := os.Create(filepath.Join(dir, pathsName))
	if err != nil {
		return nil, fmt.Errorf("create paths stream: %w", err)
	}
	pathStream, err := zstd.NewWriter(pathFile)
	if err != nil {
		pathFile.Close()
		return nil, fmt.Errorf("open zstd encoder: %w", err)
	}

	warnFile, err := os.Create(filepath.Join(dir, warningsName))
	if err != nil {
		pathStream.Close()
		pathFile.Close()
		return nil, fmt.Errorf("create warnings stream: %w", err)
	}
	warnStream := snappy.NewBufferedWriter(warnFile)

	return &Writer{
		dir:        dir,
		system:     systemName,
		now:        clock,
		pathFile:   pathFile,
		pathStream: pathStream,
		pathEnc:    json.NewEncoder(pathStream),
		warnFile:   warnFile,
		warnStream: warnStream,
		warnEnc:    json.NewEncoder(warnStream),
	}, nil
}

// Dir returns the session directory
func (w *Writer) Dir() string { return w.dir }

// WritePath appends one traced path to the session
func (w *Writer) WritePath(path tracer.RayPath) error {
	if err := w.pathEnc.Encode(path); err != nil {
		return fmt.Errorf("encode path: %w", err)
	}
	w.pathCount++
	return nil
}

// WriteWarning appends one trace warning to the session
func (w *Writer) WriteWarning(warning tracer.Warning) error {
	if err := w.warnEnc.Encode(warning); err != nil {
		return fmt.Errorf("encode warning: %w", err)
	}
	w.warningCount++
	return nil
}

// Close flushes both streams and writes the manifest
func (w *Writer) Close() error {
	if err := w.pathStream.Close(); err != nil {
		return fmt.Errorf("close zstd stream: %w", err)
	}
	if err := w.pathFile.Close(); err != nil {
		return fmt.Errorf("close paths file: %w", err)
	}
	if err := w.warnStream.Close(); err != nil {
		return fmt.Errorf("close snappy stream: %w", err)
	}
	if err := w.warnFile.Close(); err != nil {
		return fmt.Errorf("close warnings file: %w", err)
	}

	manifest := Manifest{
		Version:      1,
		System:       w.system,
		CreatedAt:    w.now().UTC().Format(time.RFC3339),
		PathsFile:    pathsName,
		WarningsFile: warningsName,
		PathCount:    w.pathCount,
		WarningCount: w.warningCount,
	}
	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.dir, manifestName), raw, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
