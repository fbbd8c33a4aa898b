// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cv-extractor CLI.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cv-extractor/internal/logging"
	"github.com/pdiddy/cv-extractor/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg holds the configuration resolved before any subcommand runs.
var cfg = types.DefaultConfig()

// rootCmd is the base command for the cv-extractor CLI.
var rootCmd = &cobra.Command{
	Use:   "cv-extractor",
	Short: "Extract candidate fields from résumés",
	Long: `cv-extractor reads résumés (PDF, DOCX or plain text) and extracts the
candidate's first name, last name, email, phone number and degree. Fields
that cannot be recognized are reported as "Not found".

Use extract for local files, serve for the HTTP upload service, and records
to inspect the submission history.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c
		if err := logging.Setup(cfg.Log, os.Stderr); err != nil {
			return err
		}
		if f := viper.ConfigFileUsed(); f != "" {
			log.Debug().Str("file", f).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cv-extractor.yaml or ~/.config/cv-extractor/cv-extractor.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("lexicon", "", "lexicon YAML file replacing the embedded one")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("lexicon.file", rootCmd.PersistentFlags().Lookup("lexicon"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cv-extractor")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cv-extractor"))
		}
	}

	viper.SetEnvPrefix("CV_EXTRACTOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	// A missing config file is normal; a broken one is reported by loadConfig.
	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
