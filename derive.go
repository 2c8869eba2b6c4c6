package main

import (
	"slices"
	"time"

	"hoops-board/rounding"
)

// dateLayout is the GAME_DATE format. Anchor comparisons are lexical and only
// hold while every date uses it.
const dateLayout = "2006-01-02"

// Trend buckets a projection against its 5-game scoring baseline.
type Trend int

const (
	TrendEven Trend = iota
	TrendUp
	TrendDown
)

func (t Trend) String() string {
	switch t {
	case TrendUp:
		return "above"
	case TrendDown:
		return "below"
	}
	return "even"
}

// Leader is the top projection for one stat.
type Leader struct {
	Projection Projection
	Value      float64
}

// GameCounts are the schedule metrics, independent of the active filter.
type GameCounts struct {
	Today    int `json:"today"`
	Upcoming int `json:"upcoming"`
}

// Delta is a projection's points difference from its baseline.
type Delta struct {
	Value float64
	Trend Trend
}

// EarliestDate returns the lexically smallest non-empty game date, or now's
// UTC date when no game has one.
func EarliestDate(games []Game, now time.Time) string {
	earliest := ""
	for _, g := range games {
		if g.GameDate == "" {
			continue
		}
		if earliest == "" || g.GameDate < earliest {
			earliest = g.GameDate
		}
	}
	if earliest == "" {
		return now.UTC().Format(dateLayout)
	}
	return earliest
}

// FilterGamesByDate selects games on the anchor date (today) or after it
// (upcoming). Games without a date match neither.
func FilterGamesByDate(games []Game, anchor string, filter Filter) []Game {
	var out []Game
	for _, g := range games {
		if g.GameDate == "" {
			continue
		}
		switch filter {
		case FilterUpcoming:
			if g.GameDate > anchor {
				out = append(out, g)
			}
		default:
			if g.GameDate == anchor {
				out = append(out, g)
			}
		}
	}
	return out
}

// CountGames counts both buckets relative to anchor.
func CountGames(games []Game, anchor string) GameCounts {
	var c GameCounts
	for _, g := range games {
		switch {
		case g.GameDate == "":
		case g.GameDate == anchor:
			c.Today++
		case g.GameDate > anchor:
			c.Upcoming++
		}
	}
	return c
}

// TopScorer returns the projection with the highest valid predicted points.
func TopScorer(projections []Projection) (Leader, bool) {
	return leaderBy(projections, func(p Projection) Stat { return p.PredictedPts })
}

// TopCombinedStat returns the projection with the highest valid predicted PRA.
func TopCombinedStat(projections []Projection) (Leader, bool) {
	return leaderBy(projections, func(p Projection) Stat { return p.PredictedPra })
}

// leaderBy keeps the first of equal maxima, matching a stable descending sort.
func leaderBy(projections []Projection, stat func(Projection) Stat) (Leader, bool) {
	var best Leader
	found := false
	for _, p := range projections {
		s := stat(p)
		if !s.Valid {
			continue
		}
		if !found || s.Value > best.Value {
			best = Leader{Projection: p, Value: s.Value}
			found = true
		}
	}
	return best, found
}

// TopProjections returns up to n projections with valid predicted points,
// highest first. Ties keep their input order.
func TopProjections(projections []Projection, n int) []Projection {
	if n <= 0 {
		return nil
	}
	valid := make([]Projection, 0, len(projections))
	for _, p := range projections {
		if p.PredictedPts.Valid {
			valid = append(valid, p)
		}
	}
	slices.SortStableFunc(valid, func(a, b Projection) int {
		switch {
		case a.PredictedPts.Value > b.PredictedPts.Value:
			return -1
		case a.PredictedPts.Value < b.PredictedPts.Value:
			return 1
		}
		return 0
	})
	if len(valid) > n {
		valid = valid[:n]
	}
	return valid
}

// ProjectionDelta compares predicted points with the 5-game baseline, both
// rounded to one decimal. A missing or unparsable baseline falls back to the
// prediction itself, so the delta is zero; that case is indistinguishable
// from a prediction that matches its baseline.
func ProjectionDelta(p Projection) Delta {
	if !p.PredictedPts.Valid {
		return Delta{}
	}
	pts := rounding.Tenths(p.PredictedPts.Value)
	baseline := pts
	if p.Baseline5gPts.Valid {
		baseline = rounding.Tenths(p.Baseline5gPts.Value)
	}

	d := Delta{Value: rounding.Tenths(pts - baseline)}
	switch {
	case d.Value > 0:
		d.Trend = TrendUp
	case d.Value < 0:
		d.Trend = TrendDown
	default:
		d.Value = 0
	}
	return d
}
