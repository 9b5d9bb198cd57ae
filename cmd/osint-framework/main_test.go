package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/osint-framework/internal/model"
	"github.com/ashwinyue/osint-framework/internal/testutil"
)

const testCatalog = `{"tools": [
  {"id": "shodan", "name": "Shodan", "url": "https://www.shodan.io", "description": "Search engine for devices", "category": "search", "subcategory": "Search Engines", "type": "web"},
  {"id": "amass", "name": "Amass", "url": "https://github.com/owasp-amass/amass", "description": "Subdomain enumeration", "category": "domains", "subcategory": "Subdomains", "type": "cli"},
  {"id": "whois", "name": "WHOIS Lookup", "url": "https://who.is", "description": "Domain registration lookup", "category": "domains", "subcategory": "Registration", "type": "web"}
]}`

// writeConfig 在临时目录生成目录文件与配置文件
func writeConfig(t *testing.T) (configPath, favoritesPath string) {
	t.Helper()
	dir := t.TempDir()
	catalogPath := testutil.WriteCatalog(t, testCatalog)
	favoritesPath = filepath.Join(dir, "favorites.json")

	configPath = filepath.Join(dir, "config.yaml")
	cfg := "log:\n  level: error\ncatalog:\n  path: " + catalogPath + "\nfavorites:\n  path: " + favoritesPath + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o644))
	return configPath, favoritesPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCatalogStats(t *testing.T) {
	configPath, _ := writeConfig(t)

	out, err := run(t, "--config", configPath, "catalog", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "domains")
	assert.Contains(t, out, "search")
	assert.Contains(t, out, "3")
	assert.NotContains(t, out, "degraded")
}

func TestCatalogSearch(t *testing.T) {
	configPath, _ := writeConfig(t)

	out, err := run(t, "-c", configPath, "catalog", "search", "--type", "cli")
	require.NoError(t, err)
	assert.Contains(t, out, "domains/amass")
	assert.NotContains(t, out, "search/shodan")

	out, err = run(t, "-c", configPath, "catalog", "search", "nothing-matches")
	require.NoError(t, err)
	assert.Contains(t, out, "No tools found")

	_, err = run(t, "-c", configPath, "catalog", "search", "--type", "binary")
	assert.Error(t, err)
}

func TestFavoritesImportExport(t *testing.T) {
	configPath, favoritesPath := writeConfig(t)

	payload := model.FavoritesExport{Favorites: []*model.Favorite{
		{ID: "domains_whois", Category: "domains", ToolID: "whois", Name: "WHOIS Lookup", Rating: 4},
		{Category: "search", ToolID: "shodan", Name: "Shodan"},
	}}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	importPath := filepath.Join(t.TempDir(), "import.json")
	require.NoError(t, os.WriteFile(importPath, data, 0o644))

	out, err := run(t, "-c", configPath, "favorites", "import", importPath)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 of 2")
	assert.FileExists(t, favoritesPath)

	out, err = run(t, "-c", configPath, "favorites", "import", importPath)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 0 of 2")

	out, err = run(t, "-c", configPath, "fav", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "domains_whois")
	assert.Contains(t, out, "search_shodan")

	exportPath := filepath.Join(t.TempDir(), "export.json")
	_, err = run(t, "-c", configPath, "favorites", "export", "-o", exportPath)
	require.NoError(t, err)

	raw, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	var exported model.FavoritesExport
	require.NoError(t, json.Unmarshal(raw, &exported))
	assert.Len(t, exported.Favorites, 2)
	require.NotNil(t, exported.Analytics)
	assert.Equal(t, 2, exported.Analytics.TotalFavorites)
}

func TestFavoritesImportInvalidFile(t *testing.T) {
	configPath, _ := writeConfig(t)
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o644))

	_, err := run(t, "-c", configPath, "favorites", "import", bad)
	assert.Error(t, err)
}
