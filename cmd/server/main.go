package main

// @title           Shelfshare Books API
// @version         1.0
// @description     Books, authors and a capability-gated library for Shelfshare.

// @contact.name   Sina Niyavarzi
// @contact.email  sinaniya@gmail.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/internal/config"
	"github.com/snnyvrz/shelfshare/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shelfshare",
	Short: "Shelfshare books API",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		log = logger.New(cfg.GinMode)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, createSuperuserCmd, purgeSessionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
