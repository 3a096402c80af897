package search

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhaapala/libris/internal/config"
	libriserrors "github.com/jhaapala/libris/internal/errors"
	"github.com/jhaapala/libris/internal/history"
	"github.com/jhaapala/libris/internal/query"
	"github.com/jhaapala/libris/internal/testutil"
)

func seededOptions(t *testing.T) Options {
	t.Helper()

	env := testutil.NewTestEnv(t)
	path := testutil.SeedSampleCatalog(t, env)

	return Options{
		DataFile: path,
		PageSize: 50,
		Plain:    true,
		Out:      &bytes.Buffer{},
	}
}

func TestSearch_PlainOutput(t *testing.T) {
	testutil.SetTestConfig(t)

	opts := seededOptions(t)
	var buf bytes.Buffer
	opts.Out = &buf

	require.NoError(t, Search(opts))

	gh := testutil.NewGoldenHelper(t, "testdata")
	gh.AssertGoldenString("plain_all.txt", buf.String())
}

func TestSearch_QueryFilters(t *testing.T) {
	testutil.SetTestConfig(t)

	opts := seededOptions(t)
	opts.State = query.State{Search: "dune"}
	var buf bytes.Buffer
	opts.Out = &buf

	require.NoError(t, Search(opts))

	out := buf.String()
	assert.Contains(t, out, "Dune | Frank Herbert")
	assert.NotContains(t, out, "Der Prozess")
	assert.Contains(t, out, "Found 1 books (page 1/1)")
}

func TestSearch_Pagination(t *testing.T) {
	testutil.SetTestConfig(t)

	opts := seededOptions(t)
	opts.PageSize = 2
	opts.Page = 1
	var buf bytes.Buffer
	opts.Out = &buf

	require.NoError(t, Search(opts))

	out := buf.String()
	assert.Contains(t, out, "The Dispossessed")
	assert.NotContains(t, out, "Dune |")
	assert.Contains(t, out, "Found 3 books (page 2/2)")
}

func TestSearch_PageClamped(t *testing.T) {
	testutil.SetTestConfig(t)

	opts := seededOptions(t)
	opts.PageSize = 2
	opts.Page = 9
	var buf bytes.Buffer
	opts.Out = &buf

	require.NoError(t, Search(opts))

	assert.Contains(t, buf.String(), "Found 3 books (page 2/2)")
}

func TestSearch_SortDescending(t *testing.T) {
	testutil.SetTestConfig(t)

	opts := seededOptions(t)
	opts.State = query.State{SortField: query.SortTitle, SortAsc: false}
	var buf bytes.Buffer
	opts.Out = &buf

	require.NoError(t, Search(opts))

	out := buf.String()
	first := strings.Index(out, "The Dispossessed")
	last := strings.Index(out, "Der Prozess")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, last, 0)
	assert.True(t, first < last, "descending title sort should put The Dispossessed first")
}

func TestSearch_CardsOutput(t *testing.T) {
	testutil.SetTestConfig(t)

	opts := seededOptions(t)
	opts.Plain = false
	var buf bytes.Buffer
	opts.Out = &buf

	require.NoError(t, Search(opts))

	out := buf.String()
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "+-")
	assert.Contains(t, out, "#scifi")
}

func TestSearch_MissingFile(t *testing.T) {
	testutil.SetTestConfig(t)

	env := testutil.NewTestEnv(t)
	opts := Options{
		DataFile: env.Path("missing.json"),
		PageSize: 10,
		Plain:    true,
		Out:      &bytes.Buffer{},
	}

	err := Search(opts)
	require.Error(t, err)
	assert.True(t, libriserrors.IsNotFound(err))
}

func TestSearch_RecordsHistory(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := testutil.SeedSampleCatalog(t, env)

	testutil.SetTestConfigWithOptions(t,
		testutil.WithDataFile(path),
		testutil.WithHistoryEnabled(true),
	)
	testutil.SetupTestHistory(t, env)
	require.NoError(t, history.ResetGlobalStore())
	t.Cleanup(func() { _ = history.ResetGlobalStore() })

	opts := Options{
		DataFile: path,
		State:    query.State{Search: "dune"},
		PageSize: 10,
		Plain:    true,
		Out:      &bytes.Buffer{},
	}
	require.NoError(t, Search(opts))

	store, err := history.GetGlobalStore()
	require.NoError(t, err)
	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "dune", entries[0].Query)
}

func TestSearchCmd_Run_BuildsOptions(t *testing.T) {
	testutil.SetTestConfigWithOptions(t,
		testutil.WithDataFile("/tmp/catalog.json"),
		testutil.WithPageSize(25),
	)

	var got Options
	oldFunc := SearchFunc
	SearchFunc = func(opts Options) error {
		got = opts
		return nil
	}
	t.Cleanup(func() { SearchFunc = oldFunc })

	cmd := &SearchCmd{
		Query:     "dune",
		Languages: []string{"en"},
		Tags:      []string{"scifi"},
		Sort:      "title",
		Desc:      true,
		Page:      3,
	}
	require.NoError(t, cmd.Run())

	assert.Equal(t, "/tmp/catalog.json", got.DataFile)
	assert.Equal(t, "dune", got.State.Search)
	assert.Equal(t, []string{"en"}, got.State.Languages)
	assert.Equal(t, []string{"scifi"}, got.State.Tags)
	assert.Equal(t, query.SortTitle, got.State.SortField)
	assert.False(t, got.State.SortAsc)
	assert.Equal(t, 2, got.Page, "pages are 1-based on the command line")
	assert.Equal(t, 25, got.PageSize, "page size defaults to the configured value")
}

func TestSearchCmd_Run_DisabledHistoryNotRecorded(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := testutil.SeedSampleCatalog(t, env)

	testutil.SetTestConfigWithOptions(t, testutil.WithDataFile(path))
	dbPath := testutil.SetupTestHistory(t, env)
	require.NoError(t, history.ResetGlobalStore())
	t.Cleanup(func() { _ = history.ResetGlobalStore() })

	require.False(t, config.HistoryEnabled)

	opts := Options{
		DataFile: path,
		State:    query.State{Search: "dune"},
		PageSize: 10,
		Plain:    true,
		Out:      &bytes.Buffer{},
	}
	require.NoError(t, Search(opts))

	env.RequireFileNotExists(strings.TrimPrefix(dbPath, env.RootDir()+"/"))
}
