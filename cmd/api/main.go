package main

import (
	"context"
	"flag"
	"os"

	"github.com/yigit/unisession/internal/pkg/logger"
	"github.com/yigit/unisession/internal/server"
)

// @title University Session API
// @version 1.0
// @description REST API over faculties, departments, teachers, groups, subjects and class sessions

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /
// @schemes http https

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file (default configs/config.yaml)")
	flag.Parse()

	srv, err := server.NewServer(context.Background(), *configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
