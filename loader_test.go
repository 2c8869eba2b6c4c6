package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const gamesCSV = "HOME_TEAM,AWAY_TEAM,GAME_DATE\n" +
	"LAL,BOS,2024-01-10\n" +
	"Unknown_None,NYK,2024-01-10\n"

const projectionsCSV = "PLAYER_NAME,TEAM,OPPONENT,PREDICTED_PTS,PREDICTED_REB,PREDICTED_AST,PREDICTED_PRA,BASELINE_5G_PTS\n" +
	"A,LAL,BOS,30.2,8.1,7.4,45.7,27.0\n" +
	"B,BOS,LAL,abc,5,5,,\n"

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadGames_DropsUnknownHomeTeam(t *testing.T) {
	path := writeFixture(t, "games.csv", gamesCSV)

	games, err := NewLoader(nil).LoadGames(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadGames: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("Expected 1 game, got %d", len(games))
	}
	want := Game{HomeTeam: "LAL", AwayTeam: "BOS", GameDate: "2024-01-10"}
	if games[0] != want {
		t.Errorf("Expected %+v, got %+v", want, games[0])
	}
	if got := EarliestDate(games, fixedNow); got != "2024-01-10" {
		t.Errorf("Expected anchor 2024-01-10, got %s", got)
	}
}

func TestLoadProjections_ParsesStatsAtBoundary(t *testing.T) {
	path := writeFixture(t, "projections.csv", projectionsCSV)

	projections, err := NewLoader(nil).LoadProjections(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadProjections: %v", err)
	}
	if len(projections) != 2 {
		t.Fatalf("Expected 2 projections, got %d", len(projections))
	}

	a := projections[0]
	if a.PlayerName != "A" || a.Team != "LAL" || a.Opponent != "BOS" {
		t.Errorf("Unexpected identity fields: %+v", a)
	}
	if !a.PredictedPts.Valid || a.PredictedPts.Value != 30.2 {
		t.Errorf("Expected PredictedPts 30.2, got %+v", a.PredictedPts)
	}
	if !a.Baseline5gPts.Valid || a.Baseline5gPts.Value != 27.0 {
		t.Errorf("Expected Baseline5gPts 27.0, got %+v", a.Baseline5gPts)
	}

	b := projections[1]
	if b.PredictedPts.Valid {
		t.Errorf("Expected invalid PredictedPts for %q", "abc")
	}
	if b.PredictedPra.Valid || b.Baseline5gPts.Valid {
		t.Errorf("Expected empty PRA and baseline to be invalid, got %+v", b)
	}
	if !b.PredictedReb.Valid || b.PredictedReb.Value != 5 {
		t.Errorf("Expected PredictedReb 5, got %+v", b.PredictedReb)
	}
}

func TestParseCSV_RaggedRowsAndBOM(t *testing.T) {
	in := "\ufeffHOME_TEAM,AWAY_TEAM,GAME_DATE\n" +
		"LAL,BOS\n" +
		"\n" +
		"MIA,CHI,2024-01-11,extra\n"

	rows, err := parseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parseCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0]["HOME_TEAM"] != "LAL" {
		t.Errorf("Expected BOM stripped from header, got keys %v", rows[0])
	}
	if v, ok := rows[0]["GAME_DATE"]; !ok || v != "" {
		t.Errorf("Expected empty GAME_DATE for short row, got %q (present=%v)", v, ok)
	}
	if rows[1]["GAME_DATE"] != "2024-01-11" || len(rows[1]) != 3 {
		t.Errorf("Expected extra field dropped, got %v", rows[1])
	}
}

func TestParseCSV_Empty(t *testing.T) {
	rows, err := parseCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("parseCSV: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected no rows, got %d", len(rows))
	}
}

func TestLoadGames_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.csv")

	_, err := NewLoader(nil).LoadGames(context.Background(), missing)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Expected *LoadError, got %v", err)
	}
	if loadErr.Dataset != "games" || loadErr.Source != missing {
		t.Errorf("Unexpected LoadError fields: %+v", loadErr)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected wrapped fs.ErrNotExist, got %v", err)
	}
}

func TestLoadProjections_FromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upcoming_projections.csv" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(projectionsCSV))
	}))
	defer srv.Close()

	loader := NewLoader(srv.Client())
	projections, err := loader.LoadProjections(context.Background(), srv.URL+"/upcoming_projections.csv")
	if err != nil {
		t.Fatalf("LoadProjections: %v", err)
	}
	if len(projections) != 2 {
		t.Errorf("Expected 2 projections, got %d", len(projections))
	}

	_, err = loader.LoadProjections(context.Background(), srv.URL+"/missing.csv")
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Expected *LoadError for 404, got %v", err)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("Expected status in error, got %v", err)
	}
}

func TestLoadAll(t *testing.T) {
	games := writeFixture(t, "games.csv", gamesCSV)
	projections := writeFixture(t, "projections.csv", projectionsCSV)
	loader := NewLoader(nil)

	ds, err := loader.LoadAll(context.Background(), games, projections)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(ds.Games) != 1 || len(ds.Projections) != 2 {
		t.Errorf("Expected 1 game and 2 projections, got %d and %d", len(ds.Games), len(ds.Projections))
	}
}

func TestLoadAll_FailsWhenEitherFails(t *testing.T) {
	games := writeFixture(t, "games.csv", gamesCSV)
	missing := filepath.Join(t.TempDir(), "missing.csv")
	loader := NewLoader(nil)

	ds, err := loader.LoadAll(context.Background(), games, missing)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Expected *LoadError, got %v", err)
	}
	if loadErr.Dataset != "projections" {
		t.Errorf("Expected projections failure, got %s", loadErr.Dataset)
	}
	if ds.Games != nil || ds.Projections != nil {
		t.Errorf("Expected no partial datasets, got %+v", ds)
	}
}
