package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"stitch/internal/server"
	"stitch/internal/traceio"
)

var serveCmd = &cobra.Command{
	Use:   "serve <profile>",
	Short: "Serve a merged profile to the profiler viewer over local HTTP",
	Args:  cobra.ExactArgs(1),
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.ListenAddr
	if cmd.Flags().Changed("addr") {
		var err error
		addr, err = cmd.Flags().GetString("addr")
		if err != nil {
			return err
		}
	}

	doc, err := traceio.Read(args[0])
	if err != nil {
		return err
	}
	srv, err := server.New(addr, doc)
	if err != nil {
		return err
	}
	router, err := srv.Router()
	if err != nil {
		return err
	}
	httpServer := http.Server{
		Addr:    addr,
		Handler: router,
	}

	log.Info().Str("url", srv.ProfileURL()).Msg("serving profile")
	log.Info().Str("url", srv.ViewerURL()).Msg("open in the profiler")

	waitForShutdown := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("error shutting down server")
		}
		close(waitForShutdown)
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-waitForShutdown
	log.Info().Msg("server stopped")
	return nil
}
