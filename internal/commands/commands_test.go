package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/wren/pkg/config"
	"github.com/simonhull/firebird-suite/wren/pkg/manifest"
	"github.com/simonhull/firebird-suite/wren/pkg/options"
)

const readmeDoc = "# dfmt\n\n### dfmt-specific properties\n" +
	"Property Name | Allowed Values | Description\n" +
	"--------------|----------------|------------\n" +
	"dfmt_align_switch_statements | **`true`**, `false` | Align labels, cases, and defaults with their enclosing switch.\n" +
	"dfmt_brace_style | **`allman`**, `otbs`, or `stroustrup` | See Wikipedia\n" +
	"dfmt_soft_max_line_length | integer, defaults to 80 | Soft line wrap width.\n" +
	"\n## Terminology\n"

const packageJSON = `{
	"name": "code-d",
	"contributes": {
		"configuration": {
			"properties": {
				"dfmt.braceStyle": {
					"title": "Brace Style",
					"type": "string",
					"default": "otbs"
				}
			}
		}
	}
}
`

type fixture struct {
	dir      string
	manifest string
	config   string
	url      string
}

func newFixture(t *testing.T, doc string) *fixture {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(doc))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	f := &fixture{
		dir:      dir,
		manifest: filepath.Join(dir, "package.json"),
		config:   filepath.Join(dir, config.FileName),
		url:      srv.URL,
	}
	require.NoError(t, os.WriteFile(f.manifest, []byte(packageJSON), 0644))
	return f
}

func newApp() *cobra.Command {
	root := RootCmd()
	root.AddCommand(SyncCmd(), InspectCmd(), InitCmd())
	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newApp()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (f *fixture) read(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(f.manifest)
	require.NoError(t, err)
	return string(data)
}

func TestSync_WritesAndIsIdempotent(t *testing.T) {
	f := newFixture(t, readmeDoc)

	out, err := run(t, "sync", "--config", f.config, "--url", f.url, "--manifest", f.manifest)
	require.NoError(t, err)
	assert.Contains(t, out, "2 added, 1 updated, 0 unchanged")

	first := f.read(t)
	m, err := manifest.Parse([]byte(first))
	require.NoError(t, err)
	assert.Equal(t, []string{"dfmt.braceStyle", "dfmt.alignSwitchStatements", "dfmt.softMaxLineLength"}, m.IDs())
	assert.Contains(t, first, "\"title\": \"Brace Style\"")
	assert.Contains(t, first, "\t\t\t\t\t\"scope\": \"resource\"")

	out, err = run(t, "sync", "--config", f.config, "--url", f.url, "--manifest", f.manifest)
	require.NoError(t, err)
	assert.Contains(t, out, "already up to date")
	assert.Equal(t, first, f.read(t))
}

func TestSync_MalformedRowLeavesFileUntouched(t *testing.T) {
	broken := "### dfmt-specific properties\nA | B | C\n--|--|--\n" +
		"dfmt_brace_style | **`allman`**, `otbs` | ok\n" +
		"dfmt_broken | only two columns\n\n"
	f := newFixture(t, broken)

	_, err := run(t, "sync", "--config", f.config, "--url", f.url, "--manifest", f.manifest)
	require.ErrorIs(t, err, options.ErrRowShape)
	assert.Equal(t, packageJSON, f.read(t))
}

func TestSync_DryRun(t *testing.T) {
	f := newFixture(t, readmeDoc)

	out, err := run(t, "sync", "--config", f.config, "--url", f.url, "--manifest", f.manifest, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "[DRY RUN]")
	assert.Contains(t, out, "dfmt.softMaxLineLength")
	assert.Equal(t, packageJSON, f.read(t))
}

func TestSync_DryRunAndDiffExclusive(t *testing.T) {
	f := newFixture(t, readmeDoc)

	_, err := run(t, "sync", "--config", f.config, "--manifest", f.manifest, "--dry-run", "--diff")
	assert.Error(t, err)
	assert.Equal(t, packageJSON, f.read(t))
}

func TestSync_SourceFileAndConfig(t *testing.T) {
	f := newFixture(t, "unused")
	readmePath := filepath.Join(f.dir, "README.md")
	require.NoError(t, os.WriteFile(readmePath, []byte(readmeDoc), 0644))

	cfg := config.Default()
	cfg.Manifest.Path = f.manifest
	cfg.Source.File = readmePath
	cfg.Options.Namespace = "d.dfmt."
	require.NoError(t, config.Save(f.config, cfg))

	_, err := run(t, "sync", "--config", f.config)
	require.NoError(t, err)

	m, err := manifest.Parse([]byte(f.read(t)))
	require.NoError(t, err)
	assert.Contains(t, m.IDs(), "d.dfmt.softMaxLineLength")
}

func TestSync_MissingManifest(t *testing.T) {
	f := newFixture(t, readmeDoc)
	_, err := run(t, "sync", "--config", f.config, "--url", f.url, "--manifest", filepath.Join(f.dir, "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInspect(t *testing.T) {
	f := newFixture(t, readmeDoc)

	out, err := run(t, "inspect", "--config", f.config, "--url", f.url)
	require.NoError(t, err)
	assert.Contains(t, out, "3 options")
	assert.Contains(t, out, "dfmt.alignSwitchStatements")
	assert.Contains(t, out, "allman, otbs, stroustrup")
	assert.Equal(t, packageJSON, f.read(t))
}

func TestInspect_Outline(t *testing.T) {
	f := newFixture(t, readmeDoc)

	out, err := run(t, "inspect", "--config", f.config, "--url", f.url, "--outline")
	require.NoError(t, err)
	assert.Contains(t, out, "### dfmt-specific properties")
	assert.Contains(t, out, "## Terminology")
}

func TestInit(t *testing.T) {
	f := newFixture(t, readmeDoc)

	_, err := run(t, "init", "--config", f.config)
	require.NoError(t, err)

	cfg, err := config.LoadFile(f.config)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = run(t, "init", "--config", f.config)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "init", "--config", f.config, "--force")
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Wren v")
}
