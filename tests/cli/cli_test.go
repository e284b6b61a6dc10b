// SPDX-License-Identifier: MPL-2.0

// Package cli contains end-to-end tests of the upkremap binary using testscript.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	cmd "github.com/upkremap/upkremap/cmd/upkremap"
	"github.com/upkremap/upkremap/pkg/unitypackage"

	"github.com/klauspost/compress/gzip"
	"github.com/rogpeppe/go-internal/testscript"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"upkremap": cmd.Execute,
	})
}

// TestCLI runs all testscript tests in the testdata directory.
func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			// Keep user configuration out of the scripts.
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			env.Setenv("HOME", env.WorkDir)
			env.Setenv("NO_COLOR", "1")
			return nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"mkpackage": cmdMkpackage,
			"unpack":    cmdUnpack,
			"refs":      cmdRefs,
		},
		ContinueOnError: true,
	})
}

// cmdMkpackage packs every top-level item of a directory into a unitypackage.
//
//	mkpackage <dir> <archive>
func cmdMkpackage(ts *testscript.TestScript, neg bool, args []string) {
	if neg || len(args) != 2 {
		ts.Fatalf("usage: mkpackage <dir> <archive>")
	}
	dir := ts.MkAbs(args[0])
	items, err := os.ReadDir(dir)
	ts.Check(err)
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name())
	}
	_, err = unitypackage.Pack(context.Background(), dir, names, ts.MkAbs(args[1]), gzip.DefaultCompression)
	ts.Check(err)
}

// cmdUnpack extracts a unitypackage into a new directory.
//
//	unpack <archive> <dir>
func cmdUnpack(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 2 {
		ts.Fatalf("usage: unpack <archive> <dir>")
	}
	dir := ts.MkAbs(args[1])
	ts.Check(os.MkdirAll(dir, 0o755))
	_, err := unitypackage.Extract(context.Background(), ts.MkAbs(args[0]), dir)
	if neg {
		if err == nil {
			ts.Fatalf("unexpected unpack success")
		}
		return
	}
	ts.Check(err)
}

// cmdRefs prints the references of an extracted package by pathname, so
// scripts can check reference integrity without knowing generated GUIDs:
//
//	Assets/B.prefab -> Assets/A.mat
//	Assets/C.prefab -> missing <guid>
//
// An entry whose own guid field does not match its directory is reported as
// "stale self".
//
//	refs <dir>
func cmdRefs(ts *testscript.TestScript, neg bool, args []string) {
	if neg || len(args) != 1 {
		ts.Fatalf("usage: refs <dir>")
	}
	root := ts.MkAbs(args[0])
	items, err := os.ReadDir(root)
	ts.Check(err)

	pathnames := make(map[string]string, len(items))
	for _, item := range items {
		name, err := unitypackage.NewEntry(root, item.Name()).Pathname()
		ts.Check(err)
		pathnames[item.Name()] = name
	}

	var lines []string
	for _, item := range items {
		entry := unitypackage.NewEntry(root, item.Name())
		if !entry.HasMeta() {
			continue
		}
		data, err := os.ReadFile(entry.MetaPath())
		ts.Check(err)
		var doc map[string]any
		ts.Check(yaml.Unmarshal(data, &doc))

		self := pathnames[entry.ID]
		if own, _ := doc["guid"].(string); own != entry.ID {
			lines = append(lines, self+" stale self")
		}
		delete(doc, "guid")
		for _, ref := range collectGUIDs(doc) {
			target, ok := pathnames[ref]
			if !ok {
				target = "missing " + ref
			}
			lines = append(lines, fmt.Sprintf("%s -> %s", self, target))
		}
	}
	slices.Sort(lines)
	_, _ = fmt.Fprint(ts.Stdout(), strings.Join(lines, "\n"))
	if len(lines) > 0 {
		_, _ = fmt.Fprintln(ts.Stdout())
	}
}

func collectGUIDs(v any) []string {
	var out []string
	switch n := v.(type) {
	case map[string]any:
		for k, child := range n {
			if s, ok := child.(string); ok && k == "guid" {
				out = append(out, s)
				continue
			}
			out = append(out, collectGUIDs(child)...)
		}
	case []any:
		for _, child := range n {
			out = append(out, collectGUIDs(child)...)
		}
	}
	return out
}
