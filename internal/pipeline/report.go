// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/upkremap/upkremap/internal/config"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type (
	// Report is the persisted record of one remapped archive.
	Report struct {
		Archive           string          `json:"archive" yaml:"archive" toml:"archive"`
		Output            string          `json:"output" yaml:"output" toml:"output"`
		Digest            string          `json:"digest" yaml:"digest" toml:"digest"`
		Entries           int             `json:"entries" yaml:"entries" toml:"entries"`
		Attempts          int             `json:"attempts" yaml:"attempts" toml:"attempts"`
		Replaced          int             `json:"replaced" yaml:"replaced" toml:"replaced"`
		PayloadsRewritten int             `json:"payloads_rewritten" yaml:"payloads_rewritten" toml:"payloads_rewritten"`
		Renames           []ReportRename  `json:"renames" yaml:"renames" toml:"renames"`
		Warnings          []ReportWarning `json:"warnings" yaml:"warnings" toml:"warnings"`
	}

	// ReportRename is one row of the rename table.
	ReportRename struct {
		Old      string `json:"old" yaml:"old" toml:"old"`
		New      string `json:"new" yaml:"new" toml:"new"`
		Pathname string `json:"pathname,omitempty" yaml:"pathname,omitempty" toml:"pathname,omitempty"`
	}

	// ReportWarning is one metadata warning.
	ReportWarning struct {
		Kind     string `json:"kind" yaml:"kind" toml:"kind"`
		Entry    string `json:"entry" yaml:"entry" toml:"entry"`
		Pathname string `json:"pathname,omitempty" yaml:"pathname,omitempty" toml:"pathname,omitempty"`
		Field    string `json:"field" yaml:"field" toml:"field"`
		Value    string `json:"value" yaml:"value" toml:"value"`
		Line     int    `json:"line" yaml:"line" toml:"line"`
	}
)

// NewReport builds the report for res.
func NewReport(res *Result) Report {
	r := Report{
		Archive:           res.Archive,
		Output:            res.Output,
		Digest:            res.Digest.String(),
		Entries:           res.Entries,
		Attempts:          res.Attempts,
		Replaced:          res.Replaced,
		PayloadsRewritten: res.PayloadsRewritten,
		Renames:           make([]ReportRename, 0, len(res.Renames)),
		Warnings:          make([]ReportWarning, 0, len(res.Warnings)),
	}
	for _, rn := range res.Renames {
		r.Renames = append(r.Renames, ReportRename{Old: rn.Old.String(), New: rn.New.String(), Pathname: rn.Pathname})
	}
	for _, w := range res.Warnings {
		r.Warnings = append(r.Warnings, ReportWarning{
			Kind:     w.Kind.String(),
			Entry:    w.Entry.String(),
			Pathname: w.Pathname,
			Field:    w.Path,
			Value:    w.Value,
			Line:     w.Line,
		})
	}
	return r
}

// ReportPath returns where the report for output is written:
// "Foo-remapped.unitypackage" becomes "Foo-remapped.report.<format>".
func ReportPath(output string, format config.ReportFormat) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".report." + format.String()
}

// Marshal encodes the report in format.
func (r Report) Marshal(format config.ReportFormat) ([]byte, error) {
	switch format {
	case config.ReportFormatTOML:
		return toml.Marshal(r)
	case config.ReportFormatYAML:
		return yaml.Marshal(r)
	case config.ReportFormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, &config.InvalidReportFormatError{Value: format}
	}
}

func writeReport(res *Result, format config.ReportFormat) (string, error) {
	data, err := NewReport(res).Marshal(format)
	if err != nil {
		return "", fmt.Errorf("encoding %s report: %w", format, err)
	}
	path := ReportPath(res.Output, format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
