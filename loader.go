package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
)

// unknownHomeTeam marks placeholder rows in the games feed.
const unknownHomeTeam = "Unknown_None"

// Game is one row of upcoming_games.csv
type Game struct {
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	GameDate string `json:"game_date"`
}

// Projection is one row of upcoming_projections.csv
type Projection struct {
	PlayerName    string `json:"player_name"`
	Team          string `json:"team"`
	Opponent      string `json:"opponent"`
	PredictedPts  Stat   `json:"predicted_pts"`
	PredictedReb  Stat   `json:"predicted_reb"`
	PredictedAst  Stat   `json:"predicted_ast"`
	PredictedPra  Stat   `json:"predicted_pra"`
	Baseline5gPts Stat   `json:"baseline_5g_pts"`
}

// Datasets is the result of one complete load.
type Datasets struct {
	Games       []Game
	Projections []Projection
}

// LoadError reports a failed fetch or parse of one dataset.
type LoadError struct {
	Dataset string
	Source  string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s from %s: %v", e.Dataset, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader fetches the two CSV datasets. Sources are either http(s) URLs or
// filesystem paths.
type Loader struct {
	client *http.Client
}

// NewLoader returns a Loader using client for URL sources.
// A nil client falls back to http.DefaultClient.
func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{client: client}
}

// LoadGames fetches the games feed and drops placeholder rows.
func (l *Loader) LoadGames(ctx context.Context, source string) ([]Game, error) {
	rows, err := l.readRows(ctx, source)
	if err != nil {
		return nil, &LoadError{Dataset: "games", Source: source, Err: err}
	}

	games := make([]Game, 0, len(rows))
	for _, row := range rows {
		if row["HOME_TEAM"] == unknownHomeTeam {
			continue
		}
		games = append(games, Game{
			HomeTeam: row["HOME_TEAM"],
			AwayTeam: row["AWAY_TEAM"],
			GameDate: row["GAME_DATE"],
		})
	}
	return games, nil
}

// LoadProjections fetches the projections feed. Numeric columns are parsed
// here so consumers only check Stat.Valid.
func (l *Loader) LoadProjections(ctx context.Context, source string) ([]Projection, error) {
	rows, err := l.readRows(ctx, source)
	if err != nil {
		return nil, &LoadError{Dataset: "projections", Source: source, Err: err}
	}

	projections := make([]Projection, 0, len(rows))
	for _, row := range rows {
		projections = append(projections, Projection{
			PlayerName:    row["PLAYER_NAME"],
			Team:          row["TEAM"],
			Opponent:      row["OPPONENT"],
			PredictedPts:  ParseStat(row["PREDICTED_PTS"]),
			PredictedReb:  ParseStat(row["PREDICTED_REB"]),
			PredictedAst:  ParseStat(row["PREDICTED_AST"]),
			PredictedPra:  ParseStat(row["PREDICTED_PRA"]),
			Baseline5gPts: ParseStat(row["BASELINE_5G_PTS"]),
		})
	}
	return projections, nil
}

// LoadAll loads both datasets concurrently. It fails if either load fails;
// there is no partial result.
func (l *Loader) LoadAll(ctx context.Context, gamesSource, projectionsSource string) (Datasets, error) {
	var ds Datasets
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		games, err := l.LoadGames(gctx, gamesSource)
		if err != nil {
			return err
		}
		ds.Games = games
		return nil
	})
	g.Go(func() error {
		projections, err := l.LoadProjections(gctx, projectionsSource)
		if err != nil {
			return err
		}
		ds.Projections = projections
		return nil
	})
	if err := g.Wait(); err != nil {
		return Datasets{}, err
	}
	return ds, nil
}

func (l *Loader) readRows(ctx context.Context, source string) ([]map[string]string, error) {
	body, err := l.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return parseCSV(body)
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !isURL(source) {
		return os.Open(source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// parseCSV maps every data row to header -> value. Short rows get "" for the
// missing columns and fields past the header are dropped.
func parseCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
