package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all application configuration
type Config struct {
	Addr              string   `env:"ADDR" envDefault:":8080"`
	GamesSource       string   `env:"GAMES_SOURCE" envDefault:"../data/upcoming_games.csv"`
	ProjectionsSource string   `env:"PROJECTIONS_SOURCE" envDefault:"../data/upcoming_projections.csv"`
	TopPlayers        int      `env:"TOP_PLAYERS" envDefault:"10"`
	GameListLimit     int      `env:"GAME_LIST_LIMIT" envDefault:"15"`
	CORSOrigins       []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	LogLevel          string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat         string   `env:"LOG_FORMAT" envDefault:"text"`
}

// loadConfig reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func loadConfig(dotenvPath string) (Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TopPlayers < 0 {
		return Config{}, fmt.Errorf("TOP_PLAYERS must not be negative, got %d", cfg.TopPlayers)
	}
	if cfg.GameListLimit < 0 {
		return Config{}, fmt.Errorf("GAME_LIST_LIMIT must not be negative, got %d", cfg.GameListLimit)
	}
	return cfg, nil
}

// newLogger builds the process logger from the configured level and format.
func newLogger(cfg Config) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return logger, nil
}
