// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cv-extractor/internal/lexicon"
	"github.com/pdiddy/cv-extractor/pkg/types"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Validate or print lexicon files",
	Long: `Lexicon files hold the words excluded from name detection, the words
excluded from degree specialties, and the catalogue of known degrees. The
binary embeds a default; lexicon.file (or --lexicon) replaces it.`,
}

var lexiconValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Parse a lexicon file and print its entry counts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := types.LexiconConfig{File: cfg.Lexicon.File}
		if len(args) == 1 {
			src.File = args[0]
		}
		lex, err := loadLexicon(src)
		if err != nil {
			return err
		}
		name := src.File
		if name == "" {
			name = "embedded"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "lexicon %s is valid\n", name)
		return writeOutput(cmd.OutOrStdout(), "yaml", lex.Counts())
	},
}

var lexiconDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the embedded lexicon, a starting point for a custom file",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write(lexicon.Embedded())
		return err
	},
}

func init() {
	lexiconCmd.AddCommand(lexiconValidateCmd)
	lexiconCmd.AddCommand(lexiconDumpCmd)

	rootCmd.AddCommand(lexiconCmd)
}
