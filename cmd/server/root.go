package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/travelmada/internal/config"
)

type options struct {
	v       *viper.Viper
	envFile string
}

func newRootCmd() *cobra.Command {
	opts := &options{v: config.NewViper()}

	root := &cobra.Command{
		Use:   "travelmada",
		Short: "Travel Mada blog and CMS server",
		Long: `travelmada serves the Travel Mada public site and its admin CMS.
Content lives in memory and is seeded from the embedded posts on start.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(opts.envFile); err != nil {
				return err
			}
			return bindServeFlags(opts.v, cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	addServeFlags(root)

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	addServeFlags(serve)

	root.AddCommand(serve, newRoutesCmd(opts))
	return root
}

// serveFlags maps command line flags onto configuration keys.
var serveFlags = map[string]string{
	"addr":      "listen_addr",
	"gin-mode":  "gin_mode",
	"log-level": "log_level",
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("addr", "", "listen address, e.g. :8080 (defaults to :$PORT)")
	cmd.Flags().String("gin-mode", "", "gin mode: debug, release or test")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn or error")
}

func bindServeFlags(v *viper.Viper, cmd *cobra.Command) error {
	for flag, key := range serveFlags {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}
