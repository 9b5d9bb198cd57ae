package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/osint-framework/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleCatalog = `{
  "tools": [
    {"name": "Shodan", "url": "https://www.shodan.io", "description": "IoT search engine", "category": "search", "subcategory": "engines", "icon": "🔍", "tags": ["iot", "api", "iot"], "type": "web", "sourceRepo": "awesome-osint"},
    {"name": "Example", "url": "example.com/x", "description": "first", "category": "misc", "subcategory": "links"},
    {"name": "Example", "url": "https://example.com/x/", "description": "second", "category": "misc", "subcategory": "links"},
    {"name": "Sherlock", "url": "https://github.com/sherlock-project/sherlock", "category": "social", "subcategory": "username", "type": "cli"},
    {"name": "", "url": "https://nameless.example"},
    {"name": "Odd", "url": "https://odd.example", "type": "plugin"}
  ],
  "totalTools": 6,
  "lastUpdated": "2024-01-01T00:00:00Z"
}`

func TestLoadCatalog(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tools-master.json", sampleCatalog)

	c := NewLoader(nil).Load(path, "")
	assert.False(t, c.Degraded)
	assert.Equal(t, path, c.Source)
	require.Equal(t, 4, c.Len())

	shodan, err := c.Get("search", "engines", "shodan")
	require.NoError(t, err)
	assert.Equal(t, []string{"iot", "api"}, shodan.Tags)
	assert.Equal(t, model.ToolTypeWeb, shodan.Type)
	assert.Equal(t, "https://www.shodan.io", shodan.URL)

	sherlock, err := c.Get("social", "", "sherlockgithub")
	require.NoError(t, err)
	assert.Equal(t, model.ToolTypeCLI, sherlock.Type)

	odd, err := c.Get(defaultCategory, defaultSubcategory, "odd")
	require.NoError(t, err)
	assert.Equal(t, model.ToolTypeWeb, odd.Type)

	assert.Equal(t, 1, c.Categories["search"].Subcategories["engines"].Count)
}

func TestLoadCatalogDedupKeepsFirst(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tools-master.json", sampleCatalog)

	c := NewLoader(nil).Load(path, "")
	tools, _, err := c.InCategory("misc")
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "first", tools[0].Description)
	assert.Equal(t, "https://example.com/x", tools[0].URL)
}

func TestLoadCatalogDuplicateIDs(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tools.json", `{"tools": [
		{"name": "Lookup", "url": "https://a.lookup.com", "category": "c", "subcategory": "s"},
		{"name": "Lookup", "url": "https://b.lookup.com", "category": "c", "subcategory": "s"},
		{"name": "Lookup", "url": "https://c.lookup.com", "category": "c", "subcategory": "other"}
	]}`)

	c := NewLoader(nil).Load(path, "")
	require.Equal(t, 3, c.Len())
	_, err := c.Get("c", "s", "lookup")
	assert.NoError(t, err)
	_, err = c.Get("c", "s", "lookup-2")
	assert.NoError(t, err)
	_, err = c.Get("c", "other", "lookup-3")
	assert.NoError(t, err)
}

func TestLoadCatalogIDsUniquePerCategory(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tools.json", `{"tools": [
		{"name": "Whois", "url": "https://who.is/a", "category": "domains", "subcategory": "Registration"},
		{"name": "Whois", "url": "https://who.is/b", "category": "domains", "subcategory": "Analysis"},
		{"name": "Whois", "url": "https://who.is/c", "category": "network", "subcategory": "Analysis"}
	]}`)

	c := NewLoader(nil).Load(path, "")
	require.Equal(t, 3, c.Len())

	first, err := c.Get("domains", "", "whois")
	require.NoError(t, err)
	assert.Equal(t, "https://who.is/a", first.URL)
	assert.Equal(t, "Registration", first.Subcategory)

	second, err := c.Get("domains", "", "whois-2")
	require.NoError(t, err)
	assert.Equal(t, "https://who.is/b", second.URL)

	// 不同分类互不影响
	other, err := c.Get("network", "", "whois")
	require.NoError(t, err)
	assert.Equal(t, "https://who.is/c", other.URL)
}

func TestLoadCatalogUsesSuppliedCategories(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tools.json", `{
		"tools": [{"name": "A", "url": "https://a.example", "category": "c", "subcategory": "s"}],
		"categories": {"c": {"icon": "★", "subcategories": {"s": {"icon": "☆", "count": 42}}}}
	}`)

	c := NewLoader(nil).Load(path, "")
	assert.Equal(t, "★", c.Categories["c"].Icon)
	assert.Equal(t, 42, c.Categories["c"].Subcategories["s"].Count)
}

func TestLoadCatalogRepairsJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tools.json", `{"tools": [
		{"name": "A", "url": "https://a.example", "category": "c", "subcategory": "s",},
	]}`)

	c := NewLoader(nil).Load(path, "")
	assert.False(t, c.Degraded)
	assert.Equal(t, 1, c.Len())
}

func TestLoadCatalogFallback(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.json")},
		{"tools not a list", writeFile(t, dir, "object.json", `{"tools": {"a": 1}}`)},
		{"tools absent", writeFile(t, dir, "empty.json", `{"categories": {}}`)},
		{"garbage", writeFile(t, dir, "garbage.json", `<<<>>>`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewLoader(nil).Load(tt.path, "")
			assert.True(t, c.Degraded)
			assert.Equal(t, SourceFallback, c.Source)
			assert.Equal(t, len(fallbackTools()), c.Len())

			tool, err := c.Get("search", "", "googleDorks")
			require.NoError(t, err)
			assert.Equal(t, "Google Dorks", tool.Name)
		})
	}
}

func TestLoadCatalogExtraDir(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tools.json", `{"tools": [
		{"name": "A", "url": "https://a.example", "category": "c", "subcategory": "s"}
	]}`)
	extra := filepath.Join(dir, "extra")
	require.NoError(t, os.Mkdir(extra, 0o755))
	writeFile(t, extra, "01-more.toml", `
[[tools]]
name = "Amass"
url = "https://github.com/owasp-amass/amass"
category = "domains"
subcategory = "Subdomains"
type = "cli"
tags = ["subdomains"]

[[tools]]
name = "Duplicate A"
url = "https://a.example/"
category = "c"
subcategory = "s"
`)
	writeFile(t, extra, "02-broken.toml", `[[tools]] name = `)
	writeFile(t, extra, "notes.txt", `ignored`)

	c := NewLoader(nil).Load(path, extra)
	require.Equal(t, 2, c.Len())
	amass, err := c.Get("domains", "Subdomains", "amassgithub")
	require.NoError(t, err)
	assert.Equal(t, model.ToolTypeCLI, amass.Type)
	assert.Equal(t, 1, c.Categories["domains"].ToolCount())
}

func TestCatalogLookupErrors(t *testing.T) {
	c := NewLoader(nil).Load(filepath.Join(t.TempDir(), "none.json"), "")

	_, err := c.Get("nope", "", "x")
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = c.Get("search", "nope", "shodan")
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = c.Get("search", "", "nope")
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, _, err = c.InCategory("nope")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
