package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoadConfig_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Expected default addr ':8080', got '%s'", cfg.Addr)
	}
	if cfg.GamesSource != "../data/upcoming_games.csv" {
		t.Errorf("Expected default games source, got '%s'", cfg.GamesSource)
	}
	if cfg.ProjectionsSource != "../data/upcoming_projections.csv" {
		t.Errorf("Expected default projections source, got '%s'", cfg.ProjectionsSource)
	}
	if cfg.TopPlayers != 10 || cfg.GameListLimit != 15 {
		t.Errorf("Expected list sizes 10/15, got %d/%d", cfg.TopPlayers, cfg.GameListLimit)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("Unexpected CORS origins %v", cfg.CORSOrigins)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("GAMES_SOURCE", "https://example.com/games.csv")
	t.Setenv("TOP_PLAYERS", "5")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.GamesSource != "https://example.com/games.csv" || cfg.TopPlayers != 5 {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("Expected two CORS origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoadConfig_DotenvFile(t *testing.T) {
	os.Clearenv()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("GAME_LIST_LIMIT=3\nLOG_FORMAT=json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(os.Clearenv)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.GameListLimit != 3 || cfg.LogFormat != "json" {
		t.Errorf("Expected dotenv values, got %+v", cfg)
	}
}

func TestLoadConfig_MissingDotenvIsIgnored(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("Expected missing dotenv to be ignored, got %v", err)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("TOP_PLAYERS", "many")
	if _, err := loadConfig(""); err == nil {
		t.Error("Expected error for non-numeric TOP_PLAYERS")
	}

	t.Setenv("TOP_PLAYERS", "-1")
	if _, err := loadConfig(""); err == nil {
		t.Error("Expected error for negative TOP_PLAYERS")
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(Config{LogLevel: "debug", LogFormat: "json"})
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("Expected JSON formatter, got %T", logger.Formatter)
	}

	if _, err := newLogger(Config{LogLevel: "loud"}); err == nil {
		t.Error("Expected error for unknown level")
	}
	if _, err := newLogger(Config{LogLevel: "info", LogFormat: "xml"}); err == nil {
		t.Error("Expected error for unknown format")
	}
}
