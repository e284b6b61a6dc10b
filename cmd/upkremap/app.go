// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"github.com/upkremap/upkremap/internal/config"
	"github.com/upkremap/upkremap/internal/pipeline"
	"github.com/upkremap/upkremap/pkg/guid"
)

type (
	// App wires CLI services and shared dependencies. Cobra handlers receive
	// an App and delegate through it.
	App struct {
		Config    config.Provider
		Confirm   pipeline.ConfirmFunc
		Generator guid.Generator
		stdout    io.Writer
		stderr    io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		// Confirm answers --confirm prompts. Defaults to a terminal prompt.
		Confirm pipeline.ConfirmFunc
		// Generator mints identifiers. Nil lets the pipeline choose.
		Generator guid.Generator
		Stdout    io.Writer
		Stderr    io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Confirm == nil {
		deps.Confirm = promptKeep
	}

	return &App{
		Config:    deps.Config,
		Confirm:   deps.Confirm,
		Generator: deps.Generator,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
}
