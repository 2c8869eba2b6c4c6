package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

type leaderResponse struct {
	PlayerName string `json:"player_name"`
	Team       string `json:"team"`
	Value      Stat   `json:"value"`
}

type metricsResponse struct {
	AnchorDate string          `json:"anchor_date"`
	Games      GameCounts      `json:"games"`
	TopScorer  *leaderResponse `json:"top_scorer"`
	TopPRA     *leaderResponse `json:"top_pra"`
}

type projectionResponse struct {
	Projection
	Delta Stat   `json:"delta"`
	Trend string `json:"trend"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// newLeaderResponse carries the value as a Stat so an infinite prediction
// encodes as null.
func newLeaderResponse(l Leader) *leaderResponse {
	return &leaderResponse{
		PlayerName: l.Projection.PlayerName,
		Team:       l.Projection.Team,
		Value:      Stat{Value: l.Value, Valid: true},
	}
}

// loadedState answers 503 and returns false when no usable load exists.
func (d *Dashboard) loadedState(w http.ResponseWriter, f Filter) (State, bool) {
	snap := d.store.Snapshot()
	if !snap.Loaded() {
		d.respondError(w, http.StatusServiceUnavailable, "datasets not loaded", snap.Err)
		return State{}, false
	}
	return snap.State(f), true
}

// metricsAPIHandler mirrors the metrics panel.
// GET /api/v1/metrics
func (d *Dashboard) metricsAPIHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := d.loadedState(w, FilterToday)
	if !ok {
		return
	}

	anchor := EarliestDate(s.Games, d.now())
	resp := metricsResponse{
		AnchorDate: anchor,
		Games:      CountGames(s.Games, anchor),
	}
	if l, found := TopScorer(s.Projections); found {
		resp.TopScorer = newLeaderResponse(l)
	}
	if l, found := TopCombinedStat(s.Projections); found {
		resp.TopPRA = newLeaderResponse(l)
	}
	d.respondJSON(w, http.StatusOK, resp)
}

// gamesAPIHandler lists games for a filter. The list is not truncated.
// GET /api/v1/games?filter={today|upcoming}
func (d *Dashboard) gamesAPIHandler(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("filter")
	f, ok := ParseFilter(raw)
	if raw != "" && !ok {
		d.respondError(w, http.StatusBadRequest, "filter must be today or upcoming", nil)
		return
	}
	s, ok := d.loadedState(w, f)
	if !ok {
		return
	}

	anchor := EarliestDate(s.Games, d.now())
	games := FilterGamesByDate(s.Games, anchor, s.Filter)
	if games == nil {
		games = []Game{}
	}
	d.respondJSON(w, http.StatusOK, map[string]interface{}{
		"anchor_date": anchor,
		"filter":      s.Filter,
		"games":       games,
		"count":       len(games),
	})
}

// projectionsAPIHandler returns the ranked projections.
// GET /api/v1/projections?limit={n}
func (d *Dashboard) projectionsAPIHandler(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", d.cfg.TopPlayers)
	if limit > 500 {
		limit = 500
	}
	s, ok := d.loadedState(w, FilterToday)
	if !ok {
		return
	}

	top := TopProjections(s.Projections, limit)
	out := make([]projectionResponse, 0, len(top))
	for _, p := range top {
		delta := ProjectionDelta(p)
		out = append(out, projectionResponse{Projection: p, Delta: Stat{Value: delta.Value, Valid: true}, Trend: delta.Trend.String()})
	}
	d.respondJSON(w, http.StatusOK, map[string]interface{}{
		"projections": out,
		"count":       len(out),
	})
}

// reloadAPIHandler re-runs the load, the manual counterpart of a page reload.
// POST /api/v1/reload
func (d *Dashboard) reloadAPIHandler(w http.ResponseWriter, r *http.Request) {
	if err := d.Reload(r.Context()); err != nil {
		d.respondError(w, http.StatusServiceUnavailable, "reload failed", err)
		return
	}
	snap := d.store.Snapshot()
	d.respondJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot":    snap.ID,
		"loaded_at":   snap.LoadedAt.UTC().Format(time.RFC3339),
		"games":       len(snap.Data.Games),
		"projections": len(snap.Data.Projections),
	})
}

func parseIntParam(r *http.Request, param string, defaultValue int) int {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// respondJSON encodes data before writing the header, so an encoding
// failure becomes a 500 instead of an empty 200.
func (d *Dashboard) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		d.log.WithError(err).Error("Failed to encode JSON response")
		buf.Reset()
		status = http.StatusInternalServerError
		json.NewEncoder(&buf).Encode(errorResponse{
			Error:   http.StatusText(status),
			Message: "failed to encode response",
			Code:    status,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		d.log.WithError(err).Debug("Failed to write JSON response")
	}
}

func (d *Dashboard) respondError(w http.ResponseWriter, status int, message string, err error) {
	resp := errorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}
	if err != nil {
		resp.Message = message + ": " + err.Error()
	}
	d.respondJSON(w, status, resp)
}
