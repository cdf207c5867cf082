// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the filings-engine CLI.
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/filings-engine/internal/identity"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the filings-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "filings-engine",
	Short: "Pipeline for extracting EPS figures from SEC 8-K filings",
	Long: `filings-engine finds SEC registrants, downloads their 8-K filings from
EDGAR, converts filing HTML to plain text, extracts one earnings-per-share
figure per filing, resolves conflicts across repeated observations, and
reports the results as a two-column CSV.

Each pipeline stage is a subcommand: search, acquire, convert, extract,
resolve, and report. The store subcommand manages the SQLite database that
carries observations between stages.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./.filings-engine.yaml or ~/.filings-engine.yaml)")
	rootCmd.PersistentFlags().String("contact", "", "EDGAR contact address (default: EDGAR_CONTACT or ~/.filings-engine/contact)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".filings-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("FILINGS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// stringOpt returns the command-line value for flag when the user set it,
// the config value under key when one is present, and the flag default
// otherwise.
func stringOpt(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

// dateFlag parses a YYYY-MM-DD date flag; a zero time means the flag was unset.
func dateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q: use YYYY-MM-DD", name, s)
	}
	return t, nil
}

// edgarUserAgent builds the User-Agent for EDGAR requests from the build
// version and the resolved operator contact.
func edgarUserAgent(cmd *cobra.Command) (string, error) {
	return identity.UserAgent(version, stringOpt(cmd, "contact", "contact"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
