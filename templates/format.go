package templates

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"hoops-board/rounding"
)

var printer = message.NewPrinter(language.English)

// Decimal formats v with one decimal place. It rounds the same way as the
// projection delta, so a card never disagrees with itself.
func Decimal(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return printer.Sprintf("%.1f", rounding.Tenths(v))
}

// Count formats an integer count.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// SignedDecimal is Decimal with an explicit "+" for positive values.
func SignedDecimal(v float64) string {
	if v > 0 {
		return "+" + Decimal(v)
	}
	return Decimal(v)
}

// FormatLoadedAt is the footer text for a load time, relative to now.
func FormatLoadedAt(loadedAt, now time.Time) string {
	return humanize.RelTime(loadedAt, now, "ago", "from now")
}

func statText(c StatCell) string {
	if !c.Valid {
		return "--"
	}
	return Decimal(c.Value)
}

func leaderSubtext(l LeaderCard, unit string) string {
	return Decimal(l.Value) + " " + unit + " (" + l.Team + ")"
}

func cardClass(color string) string {
	if color == "" {
		return "metric-card"
	}
	return "metric-card " + color
}

func valueClass(compact bool) string {
	if compact {
		return "value value-name"
	}
	return "value"
}

func tabClass(t Tab) string {
	if t.Active {
		return "tab active"
	}
	return "tab"
}

func badgeClass(g GameCard) string {
	if g.Tonight {
		return "time-badge"
	}
	return "time-badge later"
}

func badgeText(g GameCard) string {
	if g.Tonight {
		return "Tonight"
	}
	return g.GameDate
}

func trendClass(t int) string {
	switch t {
	case TrendUp:
		return "stat-secondary trend-up"
	case TrendDown:
		return "stat-secondary trend-down"
	}
	return "stat-secondary trend-even"
}

func deltaText(p PlayerCard) string {
	if p.Trend == TrendEven {
		return "Avg Match"
	}
	return SignedDecimal(p.Delta) + " proj diff"
}

const styleTag = `<style>body{font-family:system-ui,sans-serif;background:#0f172a;color:#e2e8f0;margin:0}
.dashboard{max-width:1100px;margin:0 auto;padding:2rem}
.metrics-grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(220px,1fr));gap:1rem}
.metric-card{background:#1e293b;border-radius:1rem;padding:1rem}
.metric-card .value{font-size:2rem;font-weight:700}
.metric-card .value-name{font-size:1.6rem;padding-top:.5rem}
.tab{background:none;border:1px solid #334155;color:inherit;padding:.4rem 1rem;border-radius:999px;cursor:pointer}
.tab.active{background:#3b82f6}
.game-card,.player-card{display:flex;justify-content:space-between;background:#1e293b;border-radius:.75rem;padding:.75rem;margin:.5rem 0}
.time-badge{background:#22c55e;border-radius:999px;padding:.2rem .6rem}
.time-badge.later{background:#3b82f6}
.trend-up{color:#22c55e}.trend-down{color:#ef4444}.trend-even{color:#94a3b8}
.loading-state{color:#94a3b8}
.footer{margin-top:2rem;color:#64748b;font-size:.85rem}</style>`
