package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/snnyvrz/shelfshare/internal/db"
	"github.com/snnyvrz/shelfshare/internal/server"
	"github.com/snnyvrz/shelfshare/internal/storage"
	"github.com/spf13/cobra"
)

var migrateOnServe bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()

		database, err := db.ConnectWithRetry(cfg)
		if err != nil {
			return err
		}

		if migrateOnServe {
			if err := migrate(cmd.Context(), database); err != nil {
				return err
			}
		}

		rdb, err := db.ConnectRedis(cfg)
		if err != nil {
			return err
		}
		if rdb != nil {
			defer rdb.Close()
		}

		images, err := storage.NewCloudinaryStorage(cfg.CloudinaryURL)
		if err != nil {
			return err
		}
		if images == nil {
			log.Info().Msg("CLOUDINARY_URL not set; profile photo uploads disabled")
		}

		e := server.New(server.Deps{
			Config:    cfg,
			DB:        database,
			Redis:     rdb,
			Images:    images,
			Logger:    log,
			StartTime: startTime,
		})

		srv := &http.Server{
			Addr:              cfg.Addr(),
			Handler:           e,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		serverErr := make(chan error, 1)
		go func() {
			log.Info().Str("addr", srv.Addr).Str("version", server.Version).Msg("listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()

		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-serverErr:
			return err
		}
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnServe, "migrate", true, "run migrations and seed groups before serving")
}
