package writer_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/wren/internal/writer"
)

func writeFixture(t *testing.T, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), mode))
	require.NoError(t, os.Chmod(path, mode))
	return path
}

func TestExecute_RealRun(t *testing.T) {
	path := writeFixture(t, 0600)

	var buf bytes.Buffer
	ops := []writer.Operation{&writer.UpdateFileOp{Path: path, Content: []byte("{\"a\": 1}"), Summary: "1 added"}}
	require.NoError(t, writer.Execute(context.Background(), ops, writer.ExecuteOptions{Writer: &buf}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\": 1}", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	assert.Contains(t, buf.String(), "✓ Update "+path+" (8 bytes): 1 added")
}

func TestExecute_DryRun(t *testing.T) {
	path := writeFixture(t, 0644)

	var buf bytes.Buffer
	ops := []writer.Operation{&writer.UpdateFileOp{Path: path, Content: []byte("changed")}}
	require.NoError(t, writer.Execute(context.Background(), ops, writer.ExecuteOptions{DryRun: true, Writer: &buf}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))
	assert.Contains(t, buf.String(), "[DRY RUN]")
}

func TestExecute_ValidationFailsBeforeAnyWrite(t *testing.T) {
	good := writeFixture(t, 0644)
	missing := filepath.Join(t.TempDir(), "missing.json")

	ops := []writer.Operation{
		&writer.UpdateFileOp{Path: good, Content: []byte("changed")},
		&writer.UpdateFileOp{Path: missing, Content: []byte("x")},
	}
	err := writer.Execute(context.Background(), ops, writer.ExecuteOptions{Writer: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	got, err := os.ReadFile(good)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))
}

func TestUpdateFileOp_Validate(t *testing.T) {
	ctx := context.Background()

	op := &writer.UpdateFileOp{Path: writeFixture(t, 0644)}
	assert.Error(t, op.Validate(ctx), "nil content")

	op = &writer.UpdateFileOp{Path: t.TempDir(), Content: []byte{}}
	assert.Error(t, op.Validate(ctx), "directory")

	op = &writer.UpdateFileOp{Path: writeFixture(t, 0644), Content: []byte{}}
	assert.NoError(t, op.Validate(ctx))
}

func TestUpdateFileOp_CancelledContext(t *testing.T) {
	path := writeFixture(t, 0644)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := (&writer.UpdateFileOp{Path: path, Content: []byte("x")}).Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUpdateFileOp_LeavesNoStagedFiles(t *testing.T) {
	path := writeFixture(t, 0644)

	require.NoError(t, (&writer.UpdateFileOp{Path: path, Content: []byte("x")}).Execute(context.Background()))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "package.json", entries[0].Name())
}
