package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"hoops-board/templates"
)

var testOpts = viewOptions{TopPlayers: 10, GameListLimit: 15}

func sampleState() State {
	return State{
		Games: []Game{
			{HomeTeam: "LAL", AwayTeam: "BOS", GameDate: "2024-01-10"},
			{HomeTeam: "MIA", AwayTeam: "CHI", GameDate: "2024-01-11"},
			{HomeTeam: "DEN", AwayTeam: "PHX", GameDate: "2024-01-12"},
		},
		Projections: []Projection{
			{PlayerName: "A", Team: "LAL", Opponent: "BOS", PredictedPts: stat(30.2), PredictedPra: stat(44.1), Baseline5gPts: stat(27)},
			{PlayerName: "B", Team: "BOS", Opponent: "LAL", PredictedPts: ParseStat("abc"), PredictedPra: stat(50.5)},
			{PlayerName: "C", Team: "MIA", Opponent: "CHI", PredictedPts: stat(25), PredictedReb: stat(9.96), Baseline5gPts: stat(20)},
		},
		Filter: FilterToday,
	}
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return b.String()
}

func TestFilterTransition_OnlyScheduleChanges(t *testing.T) {
	today := sampleState()
	upcoming := today.WithFilter(FilterUpcoming)

	metricsBefore := render(t, templates.Metrics(metricsView(today, fixedNow)))
	metricsAfter := render(t, templates.Metrics(metricsView(upcoming, fixedNow)))
	if metricsBefore != metricsAfter {
		t.Error("Expected metrics panel to be byte-identical across filters")
	}

	playersBefore := render(t, templates.Players(playersView(today, testOpts)))
	playersAfter := render(t, templates.Players(playersView(upcoming, testOpts)))
	if playersBefore != playersAfter {
		t.Error("Expected players panel to be byte-identical across filters")
	}

	scheduleBefore := render(t, templates.Schedule(scheduleView(today, fixedNow, testOpts)))
	scheduleAfter := render(t, templates.Schedule(scheduleView(upcoming, fixedNow, testOpts)))
	if scheduleBefore == scheduleAfter {
		t.Error("Expected schedule panel to change with the filter")
	}
}

func TestRenderersAreIdempotent(t *testing.T) {
	s := sampleState()
	first := render(t, templates.Schedule(scheduleView(s, fixedNow, testOpts)))
	second := render(t, templates.Schedule(scheduleView(s, fixedNow, testOpts)))
	if first != second {
		t.Error("Expected identical output for identical inputs")
	}
}

func TestMetricsView(t *testing.T) {
	d := metricsView(sampleState(), fixedNow)
	if d.AnchorDate != "2024-01-10" || d.GamesToday != 1 || d.GamesUpcoming != 2 {
		t.Errorf("Unexpected schedule metrics: %+v", d)
	}
	if !d.TopScorer.Found || d.TopScorer.PlayerName != "A" || d.TopScorer.Value != 30.2 {
		t.Errorf("Unexpected top scorer: %+v", d.TopScorer)
	}
	// B has no valid points but still leads PRA.
	if !d.TopPRA.Found || d.TopPRA.PlayerName != "B" {
		t.Errorf("Unexpected PRA leader: %+v", d.TopPRA)
	}
}

func TestScheduleView(t *testing.T) {
	s := sampleState()

	today := scheduleView(s, fixedNow, testOpts)
	if today.Subtitle != "2024-01-10 • 1 games scheduled" {
		t.Errorf("Unexpected today subtitle %q", today.Subtitle)
	}
	if len(today.Games) != 1 || !today.Games[0].Tonight {
		t.Errorf("Expected one game tonight, got %+v", today.Games)
	}
	if !today.Tabs[0].Active || today.Tabs[1].Active {
		t.Errorf("Expected today tab active, got %+v", today.Tabs)
	}

	upcoming := scheduleView(s.WithFilter(FilterUpcoming), fixedNow, viewOptions{GameListLimit: 1})
	if upcoming.Subtitle != "Upcoming Schedule • 2 games scheduled" {
		t.Errorf("Unexpected upcoming subtitle %q", upcoming.Subtitle)
	}
	if len(upcoming.Games) != 1 || upcoming.Games[0].Tonight {
		t.Errorf("Expected one truncated non-tonight game, got %+v", upcoming.Games)
	}
}

func TestPlayersView(t *testing.T) {
	d := playersView(sampleState(), testOpts)
	if len(d.Players) != 2 {
		t.Fatalf("Expected 2 ranked players, got %d", len(d.Players))
	}
	a, c := d.Players[0], d.Players[1]
	if a.PlayerName != "A" || c.PlayerName != "C" {
		t.Errorf("Unexpected order: %s, %s", a.PlayerName, c.PlayerName)
	}
	if c.Delta != 5 || c.Trend != templates.TrendUp {
		t.Errorf("Expected C +5.0 above baseline, got %v (%d)", c.Delta, c.Trend)
	}
	if a.Reb.Valid {
		t.Error("Expected missing REB to stay invalid")
	}
}

func TestPageView_LoadFailure(t *testing.T) {
	d := pageView(Snapshot{}, FilterToday, fixedNow, testOpts)
	if !d.LoadErr {
		t.Fatal("Expected LoadErr for an empty snapshot")
	}
	out := render(t, templates.Page(d))
	if !strings.Contains(out, "Failed to load data") {
		t.Error("Expected failure placeholder")
	}
	if strings.Contains(out, `id="games-list"`) || strings.Contains(out, `id="players-list"`) {
		t.Error("Expected no partial panels after a failed load")
	}
}

func TestPlayerCardRoundingAgrees(t *testing.T) {
	tests := []struct {
		pts, baseline string
		want          []string
	}{
		{"22.25", "22.2", []string{"22.3 PTS", "+0.1 proj diff"}},
		{"1.15", "1.1", []string{"1.1 PTS", "Avg Match"}},
		{"8.45", "8.4", []string{"8.4 PTS", "Avg Match"}},
		{"0.25", "0.3", []string{"0.3 PTS", "Avg Match"}},
	}
	for _, tt := range tests {
		s := State{Projections: []Projection{{
			PlayerName:    "A",
			PredictedPts:  ParseStat(tt.pts),
			Baseline5gPts: ParseStat(tt.baseline),
		}}}
		out := render(t, templates.Players(playersView(s, testOpts)))
		for _, want := range tt.want {
			if !strings.Contains(out, want) {
				t.Errorf("%s vs %s: expected %q in %s", tt.pts, tt.baseline, want, out)
			}
		}
	}
}

func TestPageView_FailedReloadKeepsNoFooter(t *testing.T) {
	var st Store
	st.Replace(Datasets{}, fixedNow.Add(-5*time.Minute))
	st.Fail(errors.New("boom"))

	d := pageView(st.Snapshot(), FilterToday, fixedNow, testOpts)
	out := render(t, templates.Page(d))
	if !strings.Contains(out, "Failed to load data") || strings.Contains(out, "Data loaded") {
		t.Errorf("Expected placeholder without footer, got %s", out)
	}
}
