package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Policy is the optional shared configuration for the harprep tools. Flags
// cover per-run knobs; the policy file holds the settings worth keeping
// between runs (custom blocklists, report destination, limits).
type Policy struct {
	Version int          `json:"version" yaml:"version"`
	Redact  RedactPolicy `json:"redact" yaml:"redact"`
	Clean   CleanPolicy  `json:"clean" yaml:"clean"`
	Strip   StripPolicy  `json:"strip" yaml:"strip"`
	Scrape  ScrapePolicy `json:"scrape" yaml:"scrape"`
	Report  ReportPolicy `json:"report" yaml:"report"`
}

type RedactPolicy struct {
	// Replacement overrides the default [REDACTED] mask for replace mode.
	Replacement string `json:"replacement" yaml:"replacement"`
}

type CleanPolicy struct {
	KeepStatic bool `json:"keep_static" yaml:"keep_static"`
	KeepCSS    bool `json:"keep_css" yaml:"keep_css"`
	KeepBinary bool `json:"keep_binary" yaml:"keep_binary"`

	// Blocklist, when present, replaces the built-in default lists.
	Blocklist *BlocklistPolicy `json:"blocklist" yaml:"blocklist"`
}

type BlocklistPolicy struct {
	MIMEFragments []string `json:"mime_fragments" yaml:"mime_fragments"`
	Extensions    []string `json:"extensions" yaml:"extensions"`
}

type StripPolicy struct {
	// MaxLineLength is the byte cutoff for the line stripper.
	MaxLineLength *int `json:"max_line_length" yaml:"max_line_length"`
}

type ScrapePolicy struct {
	MaxFileBytes      *int64   `json:"max_file_bytes" yaml:"max_file_bytes"`
	ExcludeExtensions []string `json:"exclude_extensions" yaml:"exclude_extensions"`
}

type ReportPolicy struct {
	// Path of the NDJSON run report; empty disables reporting.
	Path string `json:"path" yaml:"path"`
}

// ReportPath resolves the run-report destination: an explicit override wins
// over the policy value. Safe on a nil policy.
func (p *Policy) ReportPath(override string) string {
	if override != "" {
		return override
	}
	if p == nil {
		return ""
	}
	return p.Report.Path
}

// LoadPolicy reads a yaml or json policy file, chosen by extension with yaml
// as the fallback. An empty path yields a nil policy, which every consumer
// treats as all-defaults.
func LoadPolicy(path string) (*Policy, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	policy := &Policy{}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, policy); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, policy); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, policy); err != nil {
			return nil, err
		}
	}
	if policy.Version == 0 {
		policy.Version = 1
	}

	if policy.Strip.MaxLineLength != nil && *policy.Strip.MaxLineLength <= 0 {
		return nil, errors.New("strip.max_line_length must be > 0")
	}
	if policy.Scrape.MaxFileBytes != nil && *policy.Scrape.MaxFileBytes <= 0 {
		return nil, errors.New("scrape.max_file_bytes must be > 0")
	}

	// Reject malformed extensions early instead of silently never matching.
	if policy.Clean.Blocklist != nil {
		for _, ext := range policy.Clean.Blocklist.Extensions {
			if !strings.HasPrefix(ext, ".") {
				return nil, fmt.Errorf("clean.blocklist.extensions entry %q must start with a dot", ext)
			}
		}
	}
	for _, ext := range policy.Scrape.ExcludeExtensions {
		if !strings.HasPrefix(ext, ".") {
			return nil, fmt.Errorf("scrape.exclude_extensions entry %q must start with a dot", ext)
		}
	}
	return policy, nil
}
