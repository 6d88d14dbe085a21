package recorder

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"

	"github.com/optibench/go-sequential-raytracer/pkg/tracer"
)

// Session is a fully loaded recorded trace
type Session struct {
	Manifest Manifest
	Paths    []tracer.RayPath
	Warnings []tracer.Warning
}

// Load reads a session directory back into memory
func Load(dir string) (*Session, error) {
	raw, err := os.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	paths, err := loadPaths(filepath.Join(dir, manifest.PathsFile))
	if err != nil {
		return nil, err
	}
	warnings, err := loadWarnings(filepath.Join(dir, manifest.WarningsFile))
	if err != nil {
		return nil, err
	}

	return &Session{Manifest: manifest, Paths: paths, Warnings: warnings}, nil
}

func loadPaths(file string) ([]tracer.RayPath, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open paths stream: %w", err)
	}
	defer f.Close()

	reader, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("open zstd reader: %w", err)
	}
	defer reader.Close()

	var paths []tracer.RayPath
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var path tracer.RayPath
		if err := json.Unmarshal(scanner.Bytes(), &path); err != nil {
			return nil, fmt.Errorf("parse path record: %w", err)
		}
		paths = append(paths, path)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan paths stream: %w", err)
	}
	return paths, nil
}

func loadWarnings(file string) ([]tracer.Warning, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open warnings stream: %w", err)
	}
	defer f.Close()

	var warnings []tracer.Warning
	scanner := bufio.NewScanner(snappy.NewReader(f))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var warning tracer.Warning
		if err := json.Unmarshal(scanner.Bytes(), &warning); err != nil {
			return nil, fmt.Errorf("parse warning record: %w", err)
		}
		warnings = append(warnings, warning)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan warnings stream: %w", err)
	}
	return warnings, nil
}
