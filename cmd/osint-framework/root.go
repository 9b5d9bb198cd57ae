package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ashwinyue/osint-framework/internal/config"
	"github.com/ashwinyue/osint-framework/internal/logger"
)

const defaultConfigPath = "./configs/config.yaml"

var version = "1.0.0"

// rootOptions 全局参数
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "osint-framework",
		Short: "OSINT tools catalog with favorites, search and an HTTP API",
		Long: brand.Sprint("osint-framework") + " serves a catalog of open-source-intelligence tools\n" +
			subtle.Sprint("Run without a subcommand to start the HTTP server"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", os.Getenv("CONFIG_PATH"),
		"config file (defaults to "+defaultConfigPath+" when present)")

	root.AddCommand(
		serveCmd(opts),
		catalogCmd(opts),
		favoritesCmd(opts),
	)
	return root
}

// load 读取配置并创建日志
func (o *rootOptions) load() (*config.Config, *zap.Logger, error) {
	path := o.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	l, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, l, nil
}
