// SPDX-License-Identifier: MPL-2.0

package pipeline

import "fmt"

// Stage names one step of processing a package.
type Stage string

const (
	// StagePrepare creates the working directory.
	StagePrepare Stage = "prepare"
	// StageExtract unpacks the archive into the working directory.
	StageExtract Stage = "extract"
	// StageBuild checks the entries and generates the rename table.
	StageBuild Stage = "build"
	// StageRename moves every entry directory to its new identifier.
	StageRename Stage = "rename"
	// StageRewrite updates metadata references and, optionally, payloads.
	StageRewrite Stage = "rewrite"
	// StagePack writes the output archive.
	StagePack Stage = "pack"
	// StageConfirm asks whether to keep the output.
	StageConfirm Stage = "confirm"
	// StageReport writes the remap report.
	StageReport Stage = "report"
)

// StageError is a fatal failure while processing one package.
type StageError struct {
	// Archive is the package path as given.
	Archive string
	// Stage is the step that failed.
	Stage Stage
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Archive, e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error { return e.Err }
