package config

import (
	"encoding/json"
	"strings"
	"time"
)

// ExportVersion tags every exported document.
const ExportVersion = "1.0.0"

// ExportDocument is the on-disk/on-wire format: the Configuration payload
// inlined at the top level plus the version/timestamp/description wrapper.
type ExportDocument struct {
	Configuration
	Version     string `json:"version"`
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
}

// Export serializes cfg to a pretty-printed export document and returns the
// download filename alongside the bytes.
func Export(cfg Configuration, name string) (string, []byte, error) {
	doc := ExportDocument{
		Configuration: cfg,
		Version:       ExportVersion,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Description:   "ThoughtSpot shell configuration export",
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", nil, err
	}
	return ExportFilename(name, time.Now()), data, nil
}

// ExportFilename sanitizes a custom name down to alphanumerics, spaces,
// hyphens, and underscores. An empty or fully-sanitized-away name falls back
// to the dated default.
func ExportFilename(name string, now time.Time) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	sanitized := strings.TrimSpace(b.String())
	if sanitized == "" {
		return "config-" + now.Format("2006-01-02") + ".json"
	}
	return sanitized + ".json"
}
