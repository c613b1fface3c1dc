package main

import (
	"flag"
	"log"
	"os"

	"github.com/harprep/harprep/internal/config"
	"github.com/harprep/harprep/internal/har"
	"github.com/harprep/harprep/internal/redact"
	"github.com/harprep/harprep/internal/report"
)

func main() {
	doReplace := flag.Bool("replace", false, "replace the secret inside strings (default mask [REDACTED])")
	doDeleteLine := flag.Bool("delete-line", false, "delete the key/value pair containing the secret")
	doDeleteReq := flag.Bool("delete-req", false, "delete the whole request/response entry containing the secret")
	text := flag.String("text", "", "custom replacement text (used with -replace)")
	output := flag.String("o", "", "output file path (default <input>_redacted.json)")
	policyPath := flag.String("policy", "", "policy file (yaml/json)")
	reportPath := flag.String("report", "", "run report file (NDJSON)")
	flag.Parse()

	logger := log.New(os.Stdout, "harredact ", log.LstdFlags)

	args := flag.Args()
	if len(args) != 2 {
		logger.Fatalf("usage: harredact [flags] <input.har> <secret>")
	}
	input, secret := args[0], args[1]

	var mode redact.Mode
	selected := 0
	if *doReplace {
		mode = redact.ModeReplace
		selected++
	}
	if *doDeleteLine {
		mode = redact.ModeDeleteLine
		selected++
	}
	if *doDeleteReq {
		mode = redact.ModeDeleteEntry
		selected++
	}
	if selected != 1 {
		logger.Fatalf("choose exactly one of -replace, -delete-line, -delete-req")
	}

	policy, err := config.LoadPolicy(*policyPath)
	if err != nil {
		logger.Fatalf("failed to load policy: %v", err)
	}
	replacement := *text
	if replacement == "" && policy != nil {
		replacement = policy.Redact.Replacement
	}

	redactor, err := redact.New(mode, secret, replacement)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	raw, err := har.Read(input)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	doc, err := har.Parse(raw)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	result, err := redactor.Apply(doc)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	for _, warning := range result.Warnings {
		logger.Printf("warning: %s", warning)
	}

	out := *output
	if out == "" {
		out = har.DerivedPath(input, "redacted")
	}
	if err := har.Write(out, doc); err != nil {
		logger.Fatalf("%v", err)
	}

	switch mode {
	case redact.ModeReplace:
		logger.Printf("rewrote %d string values containing the secret", result.Replaced)
	case redact.ModeDeleteLine:
		logger.Printf("removed %d keys/elements containing the secret", result.Removed)
	case redact.ModeDeleteEntry:
		logger.Printf("removed %d of %d entries containing the secret", result.Removed, result.Original)
	}
	logger.Printf("saved to %s", out)

	recorder := report.NewRecorder(policy.ReportPath(*reportPath))
	if err := recorder.Append("harredact", input, raw, result); err != nil {
		logger.Printf("warning: report append failed: %v", err)
	}
}
