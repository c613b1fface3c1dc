package main

import (
	"flag"
	"log"
	"os"

	"github.com/harprep/harprep/internal/clean"
	"github.com/harprep/harprep/internal/config"
	"github.com/harprep/harprep/internal/har"
	"github.com/harprep/harprep/internal/report"
	"github.com/harprep/harprep/internal/validate"
)

func main() {
	keepCSS := flag.Bool("keep-css", false, "don't remove CSS files")
	keepStatic := flag.Bool("keep-static", false, "don't remove images, fonts, icons, media")
	keepBinary := flag.Bool("keep-binary", false, "don't strip base64 binary response data")
	output := flag.String("o", "", "output file path (default <input>_clean.json)")
	policyPath := flag.String("policy", "", "policy file (yaml/json)")
	reportPath := flag.String("report", "", "run report file (NDJSON)")
	flag.Parse()

	logger := log.New(os.Stdout, "harclean ", log.LstdFlags)

	args := flag.Args()
	if len(args) != 1 {
		logger.Fatalf("usage: harclean [flags] <input.har>")
	}
	input := args[0]

	policy, err := config.LoadPolicy(*policyPath)
	if err != nil {
		logger.Fatalf("failed to load policy: %v", err)
	}

	opts := clean.Options{
		KeepStatic: *keepStatic,
		KeepCSS:    *keepCSS,
		KeepBinary: *keepBinary,
	}
	if policy != nil {
		opts.KeepStatic = opts.KeepStatic || policy.Clean.KeepStatic
		opts.KeepCSS = opts.KeepCSS || policy.Clean.KeepCSS
		opts.KeepBinary = opts.KeepBinary || policy.Clean.KeepBinary
		if policy.Clean.Blocklist != nil {
			opts.Blocklist = &clean.Blocklist{
				MIMEFragments: policy.Clean.Blocklist.MIMEFragments,
				Extensions:    policy.Clean.Blocklist.Extensions,
			}
		}
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

	stats, err := clean.New(opts).Clean(doc)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	out := *output
	if out == "" {
		out = har.DerivedPath(input, "clean")
	}
	if err := har.Write(out, doc); err != nil {
		logger.Fatalf("%v", err)
	}

	logger.Printf("original %d requests, removed %d, final %d", stats.Original, stats.Removed, stats.Kept)
	logger.Printf("saved to %s", out)

	recorder := report.NewRecorder(policy.ReportPath(*reportPath))
	if err := recorder.Append("harclean", input, raw, stats); err != nil {
		logger.Printf("warning: report append failed: %v", err)
	}
}
