package main

import (
	"flag"
	"log"
	"os"

	"github.com/harprep/harprep/internal/config"
	"github.com/harprep/harprep/internal/filter"
	"github.com/harprep/harprep/internal/har"
	"github.com/harprep/harprep/internal/report"
	"github.com/harprep/harprep/internal/validate"
)

func main() {
	output := flag.String("o", "", "output file path (default <input>_filtered.json)")
	ignoreCase := flag.Bool("i", false, "case-insensitive matching")
	policyPath := flag.String("policy", "", "policy file (yaml/json)")
	reportPath := flag.String("report", "", "run report file (NDJSON)")
	flag.Parse()

	logger := log.New(os.Stdout, "harfilter ", log.LstdFlags)

	args := flag.Args()
	if len(args) < 2 {
		logger.Fatalf("usage: harfilter [flags] <input.har> <keyword> [keyword ...]")
	}
	input, keywords := args[0], args[1:]

	policy, err := config.LoadPolicy(*policyPath)
	if err != nil {
		logger.Fatalf("failed to load policy: %v", err)
	}

	raw, err := har.Read(input)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	if err := validate.Document(raw); err != nil {
		logger.Fatalf("%v", err)
	}
	doc, err := har.Parse(raw)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	logger.Printf("searching %d entries for inclusions %q", validate.EntryCount(raw), keywords)
	stats, err := filter.Entries(doc, keywords, *ignoreCase)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	out := *output
	if out == "" {
		out = har.DerivedPath(input, "filtered")
	}
	if err := har.Write(out, doc); err != nil {
		logger.Fatalf("%v", err)
	}

	logger.Printf("original %d, kept %d, removed %d", stats.Original, stats.Kept, stats.Removed)
	if stats.Kept == 0 {
		logger.Printf("warning: no entries matched; output has an empty entries array")
	}
	logger.Printf("saved to %s", out)

	recorder := report.NewRecorder(policy.ReportPath(*reportPath))
	if err := recorder.Append("harfilter", input, raw, stats); err != nil {
		logger.Printf("warning: report append failed: %v", err)
	}
}
