package templates

import "time"

// LeaderCard is one of the two "top projection" metric cards.
type LeaderCard struct {
	Found      bool
	PlayerName string
	Team       string
	Value      float64
}

type MetricsData struct {
	AnchorDate    string
	GamesToday    int
	GamesUpcoming int
	TopScorer     LeaderCard
	TopPRA        LeaderCard
}

type GameCard struct {
	HomeTeam string
	AwayTeam string
	GameDate string
	Tonight  bool
}

type Tab struct {
	Filter string
	Label  string
	Active bool
}

type ScheduleData struct {
	Tabs     []Tab
	Subtitle string
	Games    []GameCard
}

// Trend values match the derivation buckets: even, above baseline, below.
const (
	TrendEven = iota
	TrendUp
	TrendDown
)

// StatCell is a formatted-on-render optional number.
type StatCell struct {
	Value float64
	Valid bool
}

type PlayerCard struct {
	PlayerName string
	Team       string
	Opponent   string
	Pts        float64
	Reb        StatCell
	Ast        StatCell
	Pra        StatCell
	Delta      float64
	Trend      int
}

type PlayersData struct {
	Players []PlayerCard
}

type PageData struct {
	Title    string
	Metrics  MetricsData
	Schedule ScheduleData
	Players  PlayersData
	LoadErr  bool
	LoadedAt time.Time
	Now      time.Time
}
