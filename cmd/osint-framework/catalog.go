package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ashwinyue/osint-framework/internal/model"
	"github.com/ashwinyue/osint-framework/internal/service/catalog"
	"github.com/ashwinyue/osint-framework/internal/service/search"
)

func catalogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the tools catalog",
	}
	cmd.AddCommand(catalogStatsCmd(opts), catalogSearchCmd(opts))
	return cmd
}

// loadCatalog 按配置加载一次目录，不启动监听
func loadCatalog(opts *rootOptions) (*catalog.Catalog, error) {
	cfg, l, err := opts.load()
	if err != nil {
		return nil, err
	}
	return catalog.NewLoader(l).Load(cfg.Catalog.Path, cfg.Catalog.ExtraDir), nil
}

func catalogStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show tool counts per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(opts)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			fmt.Fprintf(w, "%s %s\n", brand.Sprint("catalog"), subtle.Sprint(c.Source))
			if c.Degraded {
				warn.Fprintln(w, "  degraded: serving built-in fallback tools")
			}
			fmt.Fprintln(w)

			names := make([]string, 0, len(c.Categories))
			for name := range c.Categories {
				names = append(names, name)
			}
			sort.Strings(names)

			rows := make([][]string, 0, len(names))
			for _, name := range names {
				info := c.Categories[name]
				rows = append(rows, []string{
					info.Icon + " " + name,
					strconv.Itoa(len(info.Subcategories)),
					strconv.Itoa(info.ToolCount()),
				})
			}
			printTable(w, []string{"CATEGORY", "SUBCATEGORIES", "TOOLS"}, rows)
			fmt.Fprintf(w, "\n  %s tools in %d categories\n", good.Sprint(c.Len()), len(names))
			return nil
		},
	}
}

func catalogSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		toolType string
		category string
		sortKey  string
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the catalog",
		Long: `Search tool names, descriptions, categories and tags.

  osint-framework catalog search shodan
  osint-framework catalog search --type cli --category domains`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := search.Query{Filter: search.Filter{Category: category}, Limit: limit}
			if len(args) == 1 {
				q.Text = args[0]
			}
			if toolType != "" {
				t, ok := model.ParseToolType(toolType)
				if !ok {
					return fmt.Errorf("unknown type %q", toolType)
				}
				q.Filter.Type = t
			}
			if sortKey != "" {
				key, ok := search.ParseSortKey(sortKey)
				if !ok {
					return fmt.Errorf("unknown sort %q", sortKey)
				}
				q.Sort = key
			}

			c, err := loadCatalog(opts)
			if err != nil {
				return err
			}
			page := search.Run(c.All(), q, nil)

			w := cmd.OutOrStdout()
			if page.Count == 0 {
				fmt.Fprintln(w, "  No tools found matching your query.")
				return nil
			}
			rows := make([][]string, 0, page.Count)
			for _, r := range page.Results {
				rows = append(rows, []string{
					r.Category + "/" + r.ID,
					r.Name,
					string(r.Type),
					truncate(r.Description, 50),
				})
			}
			printTable(w, []string{"ID", "NAME", "TYPE", "DESCRIPTION"}, rows)
			if page.Total > page.Count {
				subtle.Fprintf(w, "\n  showing %d of %d\n", page.Count, page.Total)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&toolType, "type", "t", "", "filter by type (web, cli, internal)")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVarP(&sortKey, "sort", "s", "", "sort by name, category or type")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of results")
	return cmd
}
