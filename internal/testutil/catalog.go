package testutil

import "testing"

// SampleCatalogJSON is a small book catalog used by command level tests.
const SampleCatalogJSON = `[
  {
    "title": "Dune",
    "author": "Frank Herbert",
    "language": "en",
    "tags": ["scifi", "classic"]
  },
  {
    "title": "Der Prozess",
    "author": "Franz Kafka",
    "language": "de",
    "tags": ["klassiker"]
  },
  {
    "title": "The Dispossessed",
    "author": "Ursula K. Le Guin",
    "language": "en",
    "tags": ["scifi", "utopia"]
  }
]
`

// SeedCatalog writes a books JSON document into the test environment
// and returns its absolute path.
func SeedCatalog(t *testing.T, env *TestEnv, name, content string) string {
	t.Helper()

	env.WriteFileString(name, content)
	return env.Path(name)
}

// SeedSampleCatalog writes SampleCatalogJSON as books.json and returns its path.
func SeedSampleCatalog(t *testing.T, env *TestEnv) string {
	t.Helper()

	return SeedCatalog(t, env, "books.json", SampleCatalogJSON)
}
