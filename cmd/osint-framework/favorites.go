package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ashwinyue/osint-framework/internal/model"
	"github.com/ashwinyue/osint-framework/internal/repository"
	"github.com/ashwinyue/osint-framework/internal/service/catalog"
	"github.com/ashwinyue/osint-framework/internal/service/favorite"
)

func favoritesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage the favorites store offline",
	}
	cmd.AddCommand(favoritesListCmd(opts), favoritesExportCmd(opts), favoritesImportCmd(opts))
	return cmd
}

// withFavorites 打开配置的收藏存储并在结束后关闭
func withFavorites(cmd *cobra.Command, opts *rootOptions, fn func(*favorite.Service) error) error {
	cfg, l, err := opts.load()
	if err != nil {
		return err
	}
	repo, err := repository.NewFavoriteRepository(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			l.Warn("failed to close favorites repository", zap.Error(err))
		}
	}()

	provider := catalog.NewProvider(catalog.NewLoader(l), cfg.Catalog.Path, cfg.Catalog.ExtraDir, l)
	return fn(favorite.NewService(cmd.Context(), repo, provider, l))
}

func favoritesListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withFavorites(cmd, opts, func(svc *favorite.Service) error {
				list := svc.List()
				w := cmd.OutOrStdout()
				if len(list) == 0 {
					fmt.Fprintln(w, "  No favorites yet.")
					return nil
				}
				rows := make([][]string, 0, len(list))
				for _, f := range list {
					rows = append(rows, []string{f.ID, f.Name, strconv.Itoa(f.Rating), strconv.Itoa(f.UsageCount)})
				}
				printTable(w, []string{"ID", "NAME", "RATING", "USES"}, rows)
				return nil
			})
		},
	}
}

func favoritesExportCmd(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export favorites and analytics as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withFavorites(cmd, opts, func(svc *favorite.Service) error {
				data, err := json.MarshalIndent(svc.Export(), "", "  ")
				if err != nil {
					return err
				}
				if out == "" || out == "-" {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return err
				}
				if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
					return err
				}
				good.Fprintf(cmd.ErrOrStderr(), "exported %d favorites to %s\n", svc.Count(), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func favoritesImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import favorites from an export file, skipping existing ids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}
			var payload model.FavoritesExport
			if err := json.Unmarshal(data, &payload); err != nil {
				return fmt.Errorf("invalid export file: %w", err)
			}

			return withFavorites(cmd, opts, func(svc *favorite.Service) error {
				res, err := svc.Import(cmd.Context(), &payload)
				if err != nil {
					return err
				}
				good.Fprintf(cmd.OutOrStdout(), "imported %d of %d favorites\n", res.Imported, res.Total)
				return nil
			})
		},
	}
}
