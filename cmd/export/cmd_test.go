package export

import (
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhaapala/libris/internal/catalog"
	libriserrors "github.com/jhaapala/libris/internal/errors"
	"github.com/jhaapala/libris/internal/query"
	"github.com/jhaapala/libris/internal/testutil"
)

func seedEnv(t *testing.T) (*testutil.TestEnv, string) {
	t.Helper()

	env := testutil.NewTestEnv(t)
	path := testutil.SeedCatalog(t, env, "catalog.json", testutil.SampleCatalogJSON)
	return env, path
}

func TestExport_JSONDefaultOutput(t *testing.T) {
	testutil.SetTestConfig(t)
	env, path := seedEnv(t)
	testutil.SetupJSONOutput(t, env)

	require.NoError(t, Export(Options{DataFile: path, Format: "json"}))

	env.RequireFileExists("books.json")

	exported, err := catalog.Load(env.Path("books.json"))
	require.NoError(t, err)
	assert.Equal(t, 3, exported.Len())

	gh := testutil.NewGoldenHelper(t, "testdata")
	gh.AssertGoldenJSON("export_all.json", []byte(env.ReadFileString("books.json")))
}

func TestExport_CSVDefaultOutput(t *testing.T) {
	testutil.SetTestConfig(t)
	env, path := seedEnv(t)

	// The default CSV output is relative to the working directory, so the
	// golden directory has to be resolved before changing into the sandbox.
	goldenDir, err := filepath.Abs("testdata")
	require.NoError(t, err)
	env.Chdir(".")

	require.NoError(t, Export(Options{DataFile: path, Format: "csv"}))

	env.RequireFileExists("books.csv")

	gh := testutil.NewGoldenHelper(t, goldenDir)
	gh.AssertGoldenString("export_all.csv", env.ReadFileString("books.csv"))
}

func TestExport_MarkdownDefaultDir(t *testing.T) {
	testutil.SetTestConfig(t)
	env, path := seedEnv(t)
	testutil.SetupMarkdownOutput(t, env)

	require.NoError(t, Export(Options{DataFile: path, Format: "markdown"}))

	env.RequireFileExists("Dune.md")
	env.RequireFileExists("Der Prozess.md")
	env.RequireFileExists("The Dispossessed.md")

	env.AssertFileContains("Dune.md", "author: Frank Herbert")
	env.AssertFileContains("Dune.md", "lang/en")
}

func TestExport_FilterBeforeExport(t *testing.T) {
	testutil.SetTestConfig(t)
	env, path := seedEnv(t)

	opts := Options{
		DataFile: path,
		State:    query.State{Languages: []string{"de"}},
		Format:   "csv",
		Output:   env.Path("de.csv"),
	}
	require.NoError(t, Export(opts))

	content := env.ReadFileString("de.csv")
	assert.Equal(t, "title,author,language,tags\nDer Prozess,Franz Kafka,de,klassiker\n", content)
}

func TestExport_ExplicitOutputPath(t *testing.T) {
	testutil.SetTestConfig(t)
	env, path := seedEnv(t)

	require.NoError(t, Export(Options{DataFile: path, Format: "json", Output: env.Path("out/all.json")}))

	env.RequireFileExists("out/all.json")
}

func TestExport_UnknownFormat(t *testing.T) {
	testutil.SetTestConfig(t)
	_, path := seedEnv(t)

	err := Export(Options{DataFile: path, Format: "yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")
}

func TestExport_MissingFile(t *testing.T) {
	testutil.SetTestConfig(t)
	env := testutil.NewTestEnv(t)

	err := Export(Options{DataFile: env.Path("missing.json"), Format: "json"})
	require.Error(t, err)
	assert.True(t, libriserrors.IsNotFound(err))
}

func TestExportCmd_Run_BuildsOptions(t *testing.T) {
	testutil.SetTestConfigWithOptions(t, testutil.WithDataFile("/tmp/catalog.json"))

	var got Options
	oldFunc := ExportFunc
	ExportFunc = func(opts Options) error {
		got = opts
		return nil
	}
	t.Cleanup(func() { ExportFunc = oldFunc })

	cmd := &ExportCmd{
		Query:  "dune",
		Tags:   []string{"scifi"},
		Sort:   "author",
		Desc:   true,
		Format: "markdown",
		Output: "notes",
	}
	require.NoError(t, cmd.Run())

	assert.Equal(t, "/tmp/catalog.json", got.DataFile)
	assert.Equal(t, "dune", got.State.Search)
	assert.Equal(t, []string{"scifi"}, got.State.Tags)
	assert.Equal(t, query.SortAuthor, got.State.SortField)
	assert.False(t, got.State.SortAsc)
	assert.Equal(t, "markdown", got.Format)
	assert.Equal(t, "notes", got.Output)
}
