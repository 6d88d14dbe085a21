package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/optibench/go-sequential-raytracer/pkg/recorder"
	"github.com/optibench/go-sequential-raytracer/pkg/system"
	"github.com/optibench/go-sequential-raytracer/pkg/tracer"
)

func main() {
	// Parse command line flags
	systemName := flag.String("system", "singlet", "Builtin system to trace")
	workers := flag.Int("workers", 0, "Worker count (0 = one per CPU)")
	seed := flag.Uint64("seed", 1, "Base seed for scatter sampling")
	record := flag.Bool("record", false, "Record the session to a compressed bundle")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Sequential Optical Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available systems:")
		for _, name := range system.BenchNames() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println()
		fmt.Println("Output will be saved to output/<system>/trace_<timestamp>.json")
		return
	}

	sys, ok := system.NewBench(*systemName)
	if !ok {
		fmt.Printf("Unknown system %q. Available: %s\n",
			*systemName, strings.Join(system.BenchNames(), ", "))
		os.Exit(1)
	}

	fmt.Printf("Tracing system %q (%d surfaces, %d light sources)...\n",
		sys.Name, len(sys.Surfaces), len(sys.Sources))

	startTime := time.Now()
	paths, ctx := tracer.TraceBatch(sys.Sources, sys.Surfaces,
		tracer.Config{Workers: *workers, Seed: *seed}, log.Default())
	traceTime := time.Since(startTime)

	fmt.Printf("Trace completed in %v\n", traceTime)
	fmt.Printf("Paths: %d, hits: %d, warnings: %d\n",
		len(paths), len(ctx.Hits), len(ctx.Warnings))
	for _, w := range ctx.Warnings {
		if w.Severity != tracer.SeverityInfo {
			fmt.Printf("  [%s] surface %s: %s\n", w.Severity, w.SurfaceID, w.Message)
		}
	}

	// Create output directory for this system
	outputDir := filepath.Join("output", sys.Name)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("trace_%s.json", timestamp))
	if err := writeTrace(filename, sys.Name, paths, ctx); err != nil {
		fmt.Printf("Error writing trace: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Trace saved to %s\n", filename)

	hitsFile := filepath.Join(outputDir, fmt.Sprintf("hits_%s.csv", timestamp))
	if err := writeHitsCSV(hitsFile, ctx.Hits); err != nil {
		fmt.Printf("Error writing hits: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Hits saved to %s\n", hitsFile)

	if *record {
		dir, err := recordSession(outputDir, sys.Name, paths, ctx)
		if err != nil {
			fmt.Printf("Error recording session: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Session bundle saved to %s\n", dir)
	}
}

// traceFile is the JSON document the CLI writes for the viz layer
type traceFile struct {
	System   string           `json:"system"`
	Paths    []tracer.RayPath `json:"paths"`
	Warnings []tracer.Warning `json:"warnings"`
}

func writeTrace(filename, systemName string, paths []tracer.RayPath, ctx *tracer.Context) error {
	raw, err := json.MarshalIndent(traceFile{
		System:   systemName,
		Paths:    paths,
		Warnings: ctx.Warnings,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, raw, 0o644)
}

// writeHitsCSV dumps the per-surface hit log as a flat spot table, the
// shape spot-diagram tooling wants
func writeHitsCSV(filename string, hits []tracer.Hit) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"surface", "light_id", "x", "y", "z", "wavelength_nm"}); err != nil {
		return err
	}
	for _, h := range hits {
		record := []string{
			strconv.Itoa(h.SurfaceIndex),
			h.Light,
			strconv.FormatFloat(h.Point.X, 'g', -1, 64),
			strconv.FormatFloat(h.Point.Y, 'g', -1, 64),
			strconv.FormatFloat(h.Point.Z, 'g', -1, 64),
			strconv.FormatFloat(h.Wavelength, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func recordSession(root, systemName string, paths []tracer.RayPath, ctx *tracer.Context) (string, error) {
	writer, err := recorder.NewWriter(root, systemName, nil)
	if err != nil {
		return "", err
	}
	for _, path := range paths {
		if err := writer.WritePath(path); err != nil {
			return "", err
		}
	}
	for _, warning := range ctx.Warnings {
		if err := writer.WriteWarning(warning); err != nil {
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}
	return writer.Dir(), nil
}
