// Command carehub serves the CareHub content site.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/eringen/carehub"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	devLog  bool
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "carehub",
		Short:         "CareHub - condition guides, lab panels and care programs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./carehub.yaml)")
	root.PersistentFlags().BoolVar(&devLog, "dev", false, "human-readable debug logging")

	root.AddCommand(newServeCmd(), newCheckCmd(), &cobra.Command{
		Use:   "version",
		Short: "Print the carehub version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "carehub %s\n", version)
		},
	})
	return root
}

// loadConfig reads the config file (optional unless --config is given) and
// CAREHUB_* environment variables into a SiteConfig.
func loadConfig() (carehub.SiteConfig, error) {
	v := viper.New()

	v.SetDefault("name", "CareHub")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("description", "")
	v.SetDefault("addr", ":3000")
	v.SetDefault("catalog_path", "")
	v.SetDefault("strict_catalog", false)
	v.SetDefault("default_reviewer", "Dr. Sarah Johnson, MD")
	v.SetDefault("analytics_enabled", false)
	v.SetDefault("analytics_database_path", "data/analytics.db")
	v.SetDefault("analytics_retention_days", 365)
	v.SetDefault("admin_password", "")
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("carehub")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("CAREHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return carehub.SiteConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg carehub.SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return carehub.SiteConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	if devLog {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
