// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cv-extractor/internal/decode"
	"github.com/pdiddy/cv-extractor/internal/pipeline"
	"github.com/pdiddy/cv-extractor/internal/store"
	"github.com/pdiddy/cv-extractor/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract candidate fields from résumé files",
	Long: `Extract decodes each file by its extension (.pdf, .docx or .txt), runs
the field heuristics and prints the candidate record. With a single input
the record is printed on its own; with several, one entry per file.

Use --text to read plain résumé text from stdin instead of files.`,
	RunE: runExtract,
}

// fileResult is one entry of a multi-file extract run.
type fileResult struct {
	File   string                 `json:"file" yaml:"file"`
	ID     string                 `json:"id,omitempty" yaml:"id,omitempty"`
	Record *types.CandidateRecord `json:"record,omitempty" yaml:"record,omitempty"`
	Error  string                 `json:"error,omitempty" yaml:"error,omitempty"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	fromStdin, _ := cmd.Flags().GetBool("text")
	save, _ := cmd.Flags().GetBool("save")

	if len(args) == 0 && !fromStdin {
		return fmt.Errorf("no input: pass one or more files, or --text to read stdin")
	}

	ctx := cmd.Context()
	var rec pipeline.Recorder
	if save {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		rec = st
	}
	proc, err := newProcessor(ctx, rec)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		sub, err := proc.ProcessText(ctx, "stdin", string(data))
		if err != nil {
			return err
		}
		return writeOutput(out, format, sub.Record)
	}

	docs := make([]types.Document, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		docs = append(docs, types.Document{
			Filename:  filepath.Base(path),
			MediaType: types.MediaTypeFromFilename(path),
			Data:      data,
		})
	}

	result, err := proc.ProcessBatch(ctx, docs)
	if err != nil {
		return err
	}

	if len(docs) == 1 {
		r := result.Results[0]
		if r.Err != nil {
			return r.Err
		}
		return writeOutput(out, format, r.Submission.Record)
	}

	entries := make([]fileResult, len(result.Results))
	for i, r := range result.Results {
		entries[i] = fileResult{File: args[i]}
		if r.Err != nil {
			entries[i].Error = r.Err.Error()
			continue
		}
		rec := r.Submission.Record
		entries[i].ID = r.Submission.ID
		entries[i].Record = &rec
	}
	if err := writeOutput(out, format, entries); err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d of %d file(s) failed", result.Failed, result.Total())
	}
	return nil
}

// newProcessor builds a pipeline from cfg. A non-nil rec records every
// successful submission.
func newProcessor(ctx context.Context, rec pipeline.Recorder) (*pipeline.Processor, error) {
	ex, err := newExtractor(cfg)
	if err != nil {
		return nil, err
	}
	dec, err := decode.New(ctx, cfg.Decoder)
	if err != nil {
		return nil, err
	}

	opts := []pipeline.Option{pipeline.WithMinUsableChars(cfg.Decoder.MinUsableChars)}
	if rec != nil {
		opts = append(opts, pipeline.WithRecorder(rec))
	}
	return pipeline.New(dec, ex, opts...), nil
}

// openStore opens the submission history configured at store.path.
func openStore() (*store.Store, error) {
	if cfg.Store.Path == "" {
		return nil, fmt.Errorf("store.path is not configured (set it in cv-extractor.yaml or CV_EXTRACTOR_STORE_PATH)")
	}
	return store.Open(cfg.Store)
}

func init() {
	extractCmd.Flags().String("format", "json", "output format: json or yaml")
	extractCmd.Flags().Bool("text", false, "read plain résumé text from stdin")
	extractCmd.Flags().Bool("save", false, "record each submission in the store")

	rootCmd.AddCommand(extractCmd)
}
