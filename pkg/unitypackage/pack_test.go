// SPDX-License-Identifier: MPL-2.0

package unitypackage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/upkremap/upkremap/internal/testutil"
	"github.com/upkremap/upkremap/pkg/unitypackage"

	"github.com/klauspost/compress/gzip"
	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackRoundTrip(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "in.unitypackage")
	testutil.WritePackage(t, src, append(
		testutil.AssetFiles(idA, "Assets/A", "a", "guid: "+idA+"\n"),
		testutil.AssetFiles(idB, "Assets/B", "b", "")...,
	))
	work := t.TempDir()
	_, err := unitypackage.Extract(context.Background(), src, work)
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "out.unitypackage")
	dgst, err := unitypackage.Pack(context.Background(), work, []string{idB, idA}, dest, gzip.BestCompression)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, digest.FromBytes(data), dgst)
	require.NoError(t, dgst.Validate())

	got := testutil.ReadPackage(t, dest)
	assert.Equal(t, map[string]string{
		idA + "/asset":      "a",
		idA + "/pathname":   "Assets/A",
		idA + "/asset.meta": "guid: " + idA + "\n",
		idB + "/asset":      "b",
		idB + "/pathname":   "Assets/B",
	}, got)
	assert.ElementsMatch(t, []string{idA, idB}, testutil.PackageDirs(got))
}

func TestPackOnlyNamedEntries(t *testing.T) {
	t.Parallel()

	work := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(work, idA, "asset"), []byte("a"))
	testutil.MustWriteFile(t, filepath.Join(work, idB, "asset"), []byte("b"))

	dest := filepath.Join(t.TempDir(), "out.unitypackage")
	_, err := unitypackage.Pack(context.Background(), work, []string{idA}, dest, gzip.DefaultCompression)
	require.NoError(t, err)

	assert.Equal(t, []string{idA}, testutil.PackageDirs(testutil.ReadPackage(t, dest)))
}

func TestPackFailureLeavesNoOutput(t *testing.T) {
	t.Parallel()

	work := t.TempDir()
	outDir := t.TempDir()
	dest := filepath.Join(outDir, "out.unitypackage")

	_, err := unitypackage.Pack(context.Background(), work, []string{"missing"}, dest, gzip.DefaultCompression)
	require.Error(t, err)
	assert.NoFileExists(t, dest)

	left, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, left, "temporary archive must be removed")
}

func TestPackInvalidLevel(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "out.unitypackage")
	_, err := unitypackage.Pack(context.Background(), t.TempDir(), nil, dest, 42)
	require.Error(t, err)
	assert.NoFileExists(t, dest)
}
