// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cv-extractor/internal/store"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Inspect the submission history (list, show, export)",
	Long: `Records reads the SQLite submission history at store.path. Submissions
are recorded by "extract --save" and by the HTTP service when a store is
configured.`,
}

// --- list subcommand ---

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent submissions, newest first",
	RunE:  runRecordsList,
}

func runRecordsList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	incomplete, _ := cmd.Flags().GetBool("incomplete")

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	subs, err := st.List(cmd.Context(), store.ListOptions{Limit: limit, IncompleteOnly: incomplete})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(subs) == 0 {
		fmt.Fprintln(out, "No submissions recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tFILE\tNAME\tEMAIL\tMISSING")
	for _, s := range subs {
		missing := strings.Join(s.Record.MissingFields(), ",")
		if missing == "" {
			missing = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s %s\t%s\t%s\n",
			s.ID, s.CreatedAt.Local().Format(time.DateTime), s.Filename,
			s.Record.FirstName, s.Record.LastName, s.Record.Email, missing)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d submissions\n", len(subs))
	return nil
}

// --- show subcommand ---

var recordsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sub, err := st.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), format, sub)
	},
}

// --- export subcommand ---

var recordsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every submission to stdout as JSON or YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		return st.Export(cmd.Context(), cmd.OutOrStdout(), store.Format(format))
	},
}

func init() {
	recordsListCmd.Flags().Int("limit", 20, "maximum number of submissions")
	recordsListCmd.Flags().Bool("incomplete", false, "only submissions with missing fields")
	recordsShowCmd.Flags().String("format", "json", "output format: json or yaml")
	recordsExportCmd.Flags().String("format", "json", "export format: json or yaml")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsShowCmd)
	recordsCmd.AddCommand(recordsExportCmd)

	rootCmd.AddCommand(recordsCmd)
}
