// Package testutil 提供测试辅助工具
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/osint-framework/internal/service/catalog"
)

// SampleCatalog 覆盖三种工具类型的小目录
const SampleCatalog = `{
  "tools": [
    {"id": "googleDorks", "name": "Google Dorks", "url": "https://www.exploit-db.com/google-hacking-database", "description": "Advanced search operators", "category": "search", "subcategory": "Search Engines", "tags": ["search", "dorks"], "type": "web"},
    {"id": "shodan", "name": "Shodan", "url": "https://www.shodan.io", "description": "Search engine for Internet-connected devices", "category": "search", "subcategory": "Search Engines", "tags": ["iot", "api"], "type": "web"},
    {"id": "censys", "name": "Censys", "url": "https://censys.io", "description": "Host search similar to shodan", "category": "search", "subcategory": "Search Engines", "tags": ["api"], "type": "web"},
    {"id": "whois", "name": "WHOIS Lookup", "url": "https://who.is", "description": "Domain registration lookup", "category": "domains", "subcategory": "Registration", "tags": ["domain"], "type": "web"},
    {"id": "amass", "name": "Amass", "url": "https://github.com/owasp-amass/amass", "description": "Subdomain enumeration", "category": "domains", "subcategory": "Subdomains", "tags": ["dns"], "type": "cli"},
    {"id": "obscure", "name": "Obscure Scanner", "url": "https://example.org/obscure", "description": "Scanner without a usage template", "category": "domains", "subcategory": "Subdomains", "type": "cli"},
    {"id": "sherlock", "name": "Sherlock", "url": "https://github.com/sherlock-project/sherlock", "description": "Username search across social networks", "category": "social", "subcategory": "Username Search", "tags": ["username"], "type": "cli"},
    {"id": "domainAnalysis", "name": "Domain Analysis", "url": "/tools/domain-analysis", "description": "Built-in domain analysis", "category": "domains", "subcategory": "Analysis", "tags": ["domain"], "type": "internal"},
    {"id": "ipAnalysis", "name": "IP Analysis", "url": "/tools/ip-analysis", "description": "Built-in IP classification", "category": "network", "subcategory": "Analysis", "tags": ["ip"], "type": "internal"},
    {"id": "emailAnalysis", "name": "Email Analysis", "url": "/tools/email-analysis", "description": "Built-in email analysis", "category": "email", "subcategory": "Analysis", "type": "internal"},
    {"id": "sslAnalysis", "name": "SSL Analysis", "url": "/tools/ssl-analysis", "description": "Certificate analysis", "category": "domains", "subcategory": "Analysis", "type": "internal"},
    {"id": "mysteryAnalysis", "name": "Mystery", "url": "/tools/mystery", "description": "Unwired internal tool", "category": "domains", "subcategory": "Analysis", "type": "internal"}
  ]
}`

// SampleCatalogTools SampleCatalog 中的工具数
const SampleCatalogTools = 12

// WriteCatalog 把目录 JSON 写入临时目录并返回路径
func WriteCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tools-master.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// CatalogProvider 由目录 JSON 创建 Provider，content 为空时使用内置工具集
func CatalogProvider(t *testing.T, content string) *catalog.Provider {
	t.Helper()
	path := filepath.Join(t.TempDir(), "missing.json")
	if content != "" {
		path = WriteCatalog(t, content)
	}
	return catalog.NewProvider(catalog.NewLoader(nil), path, "", nil)
}

// CanceledContext 返回已取消的 context
func CanceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}
