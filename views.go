package main

import (
	"time"

	"hoops-board/templates"
)

// viewOptions are the list sizes the panels truncate to.
type viewOptions struct {
	TopPlayers    int
	GameListLimit int
}

// metricsView derives the summary cards. It ignores s.Filter.
func metricsView(s State, now time.Time) templates.MetricsData {
	anchor := EarliestDate(s.Games, now)
	counts := CountGames(s.Games, anchor)
	d := templates.MetricsData{
		AnchorDate:    anchor,
		GamesToday:    counts.Today,
		GamesUpcoming: counts.Upcoming,
	}
	if l, ok := TopScorer(s.Projections); ok {
		d.TopScorer = leaderCard(l)
	}
	if l, ok := TopCombinedStat(s.Projections); ok {
		d.TopPRA = leaderCard(l)
	}
	return d
}

func leaderCard(l Leader) templates.LeaderCard {
	return templates.LeaderCard{
		Found:      true,
		PlayerName: l.Projection.PlayerName,
		Team:       l.Projection.Team,
		Value:      l.Value,
	}
}

// scheduleView lists the games selected by s.Filter.
func scheduleView(s State, now time.Time, opts viewOptions) templates.ScheduleData {
	anchor := EarliestDate(s.Games, now)
	games := FilterGamesByDate(s.Games, anchor, s.Filter)

	d := templates.ScheduleData{
		Tabs: []templates.Tab{
			{Filter: string(FilterToday), Label: "Today", Active: s.Filter != FilterUpcoming},
			{Filter: string(FilterUpcoming), Label: "Upcoming", Active: s.Filter == FilterUpcoming},
		},
	}
	if s.Filter == FilterUpcoming {
		d.Subtitle = "Upcoming Schedule • " + templates.Count(len(games)) + " games scheduled"
	} else {
		d.Subtitle = anchor + " • " + templates.Count(len(games)) + " games scheduled"
	}

	if len(games) > opts.GameListLimit {
		games = games[:opts.GameListLimit]
	}
	for _, g := range games {
		d.Games = append(d.Games, templates.GameCard{
			HomeTeam: g.HomeTeam,
			AwayTeam: g.AwayTeam,
			GameDate: g.GameDate,
			Tonight:  g.GameDate == anchor,
		})
	}
	return d
}

// playersView builds the projection leaderboard. It ignores s.Filter.
func playersView(s State, opts viewOptions) templates.PlayersData {
	var d templates.PlayersData
	for _, p := range TopProjections(s.Projections, opts.TopPlayers) {
		delta := ProjectionDelta(p)
		d.Players = append(d.Players, templates.PlayerCard{
			PlayerName: p.PlayerName,
			Team:       p.Team,
			Opponent:   p.Opponent,
			Pts:        p.PredictedPts.Value,
			Reb:        statCell(p.PredictedReb),
			Ast:        statCell(p.PredictedAst),
			Pra:        statCell(p.PredictedPra),
			Delta:      delta.Value,
			Trend:      int(delta.Trend),
		})
	}
	return d
}

func statCell(s Stat) templates.StatCell {
	return templates.StatCell{Value: s.Value, Valid: s.Valid}
}

func pageView(snap Snapshot, f Filter, now time.Time, opts viewOptions) templates.PageData {
	d := templates.PageData{
		Title:    "Courtside Projections",
		LoadErr:  !snap.Loaded(),
		LoadedAt: snap.LoadedAt,
		Now:      now,
	}
	if d.LoadErr {
		return d
	}
	s := snap.State(f)
	d.Metrics = metricsView(s, now)
	d.Schedule = scheduleView(s, now, opts)
	d.Players = playersView(s, opts)
	return d
}
