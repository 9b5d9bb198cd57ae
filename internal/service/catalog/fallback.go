package catalog

import "github.com/ashwinyue/osint-framework/internal/model"

// fallbackTools 目录文件缺失或损坏时使用的内置工具集
func fallbackTools() []*model.Tool {
	return []*model.Tool{
		{
			ID:          "googleDorks",
			Name:        "Google Dorks",
			URL:         "https://www.exploit-db.com/google-hacking-database",
			Description: "Advanced Google search operators for finding exposed information",
			Category:    "search",
			Subcategory: "Search Engines",
			Icon:        "🔍",
			SourceRepo:  "builtin",
			Tags:        []string{"search", "dorks", "google"},
			Type:        model.ToolTypeWeb,
		},
		{
			ID:          "shodan",
			Name:        "Shodan",
			URL:         "https://www.shodan.io",
			Description: "Search engine for Internet-connected devices",
			Category:    "search",
			Subcategory: "Search Engines",
			Icon:        "🔍",
			SourceRepo:  "builtin",
			Tags:        []string{"search", "iot", "api"},
			Type:        model.ToolTypeWeb,
		},
		{
			ID:              "whois",
			Name:            "WHOIS Lookup",
			URL:             "https://who.is",
			Description:     "Domain registration and ownership lookup",
			Category:        "domains",
			Subcategory:     "Registration",
			Icon:            "🌐",
			SubcategoryIcon: "📇",
			SourceRepo:      "builtin",
			Tags:            []string{"domain", "whois"},
			Type:            model.ToolTypeWeb,
		},
		{
			ID:          "domainAnalysis",
			Name:        "Domain Analysis",
			URL:         "/tools/domain-analysis",
			Description: "Built-in domain structure analysis",
			Category:    "domains",
			Subcategory: "Analysis",
			Icon:        "🌐",
			SourceRepo:  "builtin",
			Tags:        []string{"domain", "analysis"},
			Type:        model.ToolTypeInternal,
		},
		{
			ID:          "ipAnalysis",
			Name:        "IP Analysis",
			URL:         "/tools/ip-analysis",
			Description: "Built-in IP address classification",
			Category:    "network",
			Subcategory: "Analysis",
			Icon:        "📡",
			SourceRepo:  "builtin",
			Tags:        []string{"ip", "analysis"},
			Type:        model.ToolTypeInternal,
		},
		{
			ID:          "sherlock",
			Name:        "Sherlock",
			URL:         "https://github.com/sherlock-project/sherlock",
			Description: "Hunt down social media accounts by username across social networks",
			Category:    "social",
			Subcategory: "Username Search",
			Icon:        "👤",
			SourceRepo:  "builtin",
			Tags:        []string{"username", "social", "cli"},
			Type:        model.ToolTypeCLI,
		},
	}
}
