// Package output renders CLI results in json, text, or human form.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spotshell/spotshell/internal/classify"
	"github.com/spotshell/spotshell/internal/config"
	"github.com/spotshell/spotshell/internal/presets"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatText  Format = "text"
	FormatHuman Format = "human"
)

type Formatter struct {
	format Format
	out    io.Writer
	err    io.Writer
}

// NewFormatter creates a new output formatter
func NewFormatter(format Format) *Formatter {
	return &Formatter{
		format: format,
		out:    os.Stdout,
		err:    os.Stderr,
	}
}

// NewFormatterWithWriters creates a formatter with custom output writers for testability
func NewFormatterWithWriters(format Format, out, errW io.Writer) *Formatter {
	return &Formatter{
		format: format,
		out:    out,
		err:    errW,
	}
}

// OutputClassification outputs a question classification verdict
func (f *Formatter) OutputClassification(c classify.QuestionClassification) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(c)
	case FormatText:
		fmt.Fprintf(f.out, "is_data_question=%t\tconfidence=%.2f\tmodel=%s\n",
			c.IsDataQuestion, c.Confidence, c.SuggestedModel)
		return nil
	case FormatHuman:
		verdict := "general question"
		if c.IsDataQuestion {
			verdict = "data question"
		}
		fmt.Fprintf(f.out, "Verdict: %s (confidence %.0f%%)\n", verdict, c.Confidence*100)
		fmt.Fprintf(f.out, "Reasoning: %s\n", c.Reasoning)
		if c.SuggestedModel != "" {
			fmt.Fprintf(f.out, "Suggested model: %s\n", c.SuggestedModel)
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputPresetList outputs the remote repository's preset files
func (f *Formatter) OutputPresetList(files []presets.PresetFile) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(files)
	case FormatText:
		for _, p := range files {
			fmt.Fprintf(f.out, "name=%s\turl=%s\n", p.Name, p.DownloadURL)
		}
		return nil
	case FormatHuman:
		if len(files) == 0 {
			fmt.Fprintln(f.out, "No presets available")
			return nil
		}
		fmt.Fprintf(f.out, "Available presets (%d):\n", len(files))
		for _, p := range files {
			fmt.Fprintf(f.out, "  • %s\n", p.Name)
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputStorageHealth outputs a storage health report
func (f *Formatter) OutputStorageHealth(h config.StorageHealth) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(h)
	case FormatText:
		fmt.Fprintf(f.out, "available=%t\thealthy=%t\tsize=%d\tquota=%d\tusage=%.1f%%\n",
			h.Available, h.Healthy, h.CurrentSize, h.Quota, h.UsagePercentage)
		return nil
	case FormatHuman:
		if !h.Available {
			fmt.Fprintln(f.out, "Storage: unavailable")
			fmt.Fprintf(f.out, "%s\n", h.Message)
			return nil
		}
		status := "healthy"
		if !h.Healthy {
			status = "⚠ unhealthy"
		}
		fmt.Fprintf(f.out, "Storage: %s\n", status)
		fmt.Fprintf(f.out, "Usage: %d / %d bytes (%.1f%%)\n", h.CurrentSize, h.Quota, h.UsagePercentage)
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputSaveReport outputs per-field persistence results
func (f *Formatter) OutputSaveReport(rep config.SaveReport) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(rep)
	case FormatText:
		for _, field := range rep.Saved {
			fmt.Fprintf(f.out, "saved\t%s\n", field)
		}
		for _, fail := range rep.Failed {
			fmt.Fprintf(f.out, "failed\t%s\t%s\n", fail.Field, fail.Detail)
		}
		return nil
	case FormatHuman:
		fmt.Fprintf(f.out, "Saved %d configuration field(s)\n", len(rep.Saved))
		for _, fail := range rep.Failed {
			fmt.Fprintf(f.out, "  ✗ %s: %s\n", fail.Field, fail.Detail)
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputConfiguration outputs the merged configuration
func (f *Formatter) OutputConfiguration(cfg config.Configuration) error {
	switch f.format {
	case FormatJSON, FormatText:
		enc := json.NewEncoder(f.out)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	case FormatHuman:
		fmt.Fprintf(f.out, "Application: %s\n", cfg.App.ApplicationName)
		fmt.Fprintf(f.out, "ThoughtSpot URL: %s\n", cfg.App.ThoughtSpotURL)
		fmt.Fprintf(f.out, "Home page: %s\n", cfg.HomePage.Type)
		fmt.Fprintf(f.out, "Standard menus: %d\n", len(cfg.StandardMenus))
		fmt.Fprintf(f.out, "Custom menus: %d\n", len(cfg.CustomMenus))
		fmt.Fprintf(f.out, "Users: %d\n", len(cfg.Users.Users))
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// Success prints a success message (human format only, otherwise silent)
func (f *Formatter) Success(format string, args ...interface{}) {
	if f.format == FormatHuman {
		fmt.Fprintf(f.out, "✓ "+format+"\n", args...)
	}
}

// Warning prints a warning to stderr regardless of format
func (f *Formatter) Warning(format string, args ...interface{}) {
	fmt.Fprintf(f.err, "Warning: "+format+"\n", args...)
}
