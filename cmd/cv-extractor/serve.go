// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cv-extractor/internal/pipeline"
	"github.com/pdiddy/cv-extractor/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP upload service",
	Long: `Serve starts the HTTP API. POST a PDF or DOCX résumé as the multipart
field "file" to /api/v1/upload-cv to receive the candidate record. When
store.path is set every upload is recorded and can be listed under
/api/v1/records. Health is served at /health and metrics at /metrics.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		rec  pipeline.Recorder
		opts []server.Option
	)
	if cfg.Store.Path != "" {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		rec = st
		opts = append(opts, server.WithRecords(st))
	}

	proc, err := newProcessor(ctx, rec)
	if err != nil {
		return err
	}

	srv, err := server.New(proc, log.Logger, cfg.Server, opts...)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	serveCmd.Flags().String("host", "", "listen host (default from server.host)")
	serveCmd.Flags().Int("port", 0, "listen port (default from server.port)")
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}
