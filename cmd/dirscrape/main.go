package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/harprep/harprep/internal/config"
	"github.com/harprep/harprep/internal/scrape"
)

func main() {
	output := flag.String("o", "", "output manifest path (default <dir>_content.txt)")
	label := flag.String("label", "", "source label written in the manifest header")
	maxBytes := flag.Int64("max-bytes", 0, "skip files larger than this (default 10 MiB)")
	policyPath := flag.String("policy", "", "policy file (yaml/json)")
	flag.Parse()

	logger := log.New(os.Stdout, "dirscrape ", log.LstdFlags)

	args := flag.Args()
	if len(args) != 1 {
		logger.Fatalf("usage: dirscrape [flags] <directory>")
	}
	root := filepath.Clean(args[0])

	info, err := os.Stat(root)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	if !info.IsDir() {
		logger.Fatalf("%s is not a directory", root)
	}

	policy, err := config.LoadPolicy(*policyPath)
	if err != nil {
		logger.Fatalf("failed to load policy: %v", err)
	}

	opts := scrape.Options{
		MaxFileBytes: *maxBytes,
		Label:        *label,
	}
	if policy != nil {
		if opts.MaxFileBytes == 0 && policy.Scrape.MaxFileBytes != nil {
			opts.MaxFileBytes = *policy.Scrape.MaxFileBytes
		}
		opts.ExcludeExtensions = policy.Scrape.ExcludeExtensions
	}

	out := *output
	if out == "" {
		out = filepath.Base(root) + "_content.txt"
	}
	dst, err := os.Create(out)
	if err != nil {
		logger.Fatalf("write %s: %v", out, err)
	}

	stats, err := scrape.Manifest(root, dst, opts)
	if err != nil {
		dst.Close()
		os.Remove(out)
		logger.Fatalf("%v", err)
	}
	if err := dst.Close(); err != nil {
		logger.Fatalf("write %s: %v", out, err)
	}

	logger.Printf("wrote %d files, skipped %d binary, %d oversized", stats.Files, stats.SkippedBinary, stats.SkippedLarge)
	logger.Printf("saved to %s", out)
}
