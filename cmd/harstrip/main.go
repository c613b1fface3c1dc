package main

import (
	"bytes"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/harprep/harprep/internal/config"
	"github.com/harprep/harprep/internal/report"
	"github.com/harprep/harprep/internal/strip"
)

func main() {
	maxLen := flag.Int("max", 0, "maximum line length in bytes (default 1000)")
	output := flag.String("o", "", "output file path (default <input>_stripped<ext>)")
	policyPath := flag.String("policy", "", "policy file (yaml/json)")
	reportPath := flag.String("report", "", "run report file (NDJSON)")
	flag.Parse()

	logger := log.New(os.Stdout, "harstrip ", log.LstdFlags)

	args := flag.Args()
	if len(args) != 1 {
		logger.Fatalf("usage: harstrip [flags] <input.har>")
	}
	input := args[0]

	policy, err := config.LoadPolicy(*policyPath)
	if err != nil {
		logger.Fatalf("failed to load policy: %v", err)
	}
	cutoff := *maxLen
	if cutoff == 0 && policy != nil && policy.Strip.MaxLineLength != nil {
		cutoff = *policy.Strip.MaxLineLength
	}

	// Byte-level pass: no UTF-8 repair, no JSON parsing. The output is a raw
	// skim of the capture, not necessarily valid JSON.
	raw, err := os.ReadFile(input)
	if err != nil {
		logger.Fatalf("read %s: %v", input, err)
	}

	out := *output
	if out == "" {
		ext := filepath.Ext(input)
		out = strings.TrimSuffix(input, ext) + "_stripped" + ext
	}
	dst, err := os.Create(out)
	if err != nil {
		logger.Fatalf("write %s: %v", out, err)
	}

	stats, err := strip.Lines(bytes.NewReader(raw), dst, cutoff)
	if err != nil {
		dst.Close()
		os.Remove(out)
		logger.Fatalf("%v", err)
	}
	if err := dst.Close(); err != nil {
		logger.Fatalf("write %s: %v", out, err)
	}

	logger.Printf("original %d lines, kept %d, removed %d", stats.Original, stats.Kept, stats.Removed)
	logger.Printf("saved to %s", out)

	recorder := report.NewRecorder(policy.ReportPath(*reportPath))
	if err := recorder.Append("harstrip", input, raw, stats); err != nil {
		logger.Printf("warning: report append failed: %v", err)
	}
}
