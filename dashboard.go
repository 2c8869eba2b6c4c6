package main

import (
	"context"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"hoops-board/templates"
)

const filterCookie = "filter"

// Dashboard owns the loaded datasets and serves every panel from them.
type Dashboard struct {
	cfg    Config
	loader *Loader
	store  *Store
	log    *logrus.Entry
	now    func() time.Time
}

// NewDashboard creates a dashboard with nothing loaded yet.
func NewDashboard(cfg Config, loader *Loader, logger *logrus.Logger) *Dashboard {
	return &Dashboard{
		cfg:    cfg,
		loader: loader,
		store:  &Store{},
		log:    logger.WithField("component", "dashboard"),
		now:    time.Now,
	}
}

// Reload fetches both datasets and installs them. On failure the error is
// recorded and every panel shows the load-failure placeholder.
func (d *Dashboard) Reload(ctx context.Context) error {
	start := d.now()
	ds, err := d.loader.LoadAll(ctx, d.cfg.GamesSource, d.cfg.ProjectionsSource)
	if err != nil {
		d.store.Fail(err)
		d.log.WithError(err).Error("dataset load failed")
		return err
	}

	id := d.store.Replace(ds, d.now())
	d.log.WithFields(logrus.Fields{
		"snapshot":    id,
		"games":       len(ds.Games),
		"projections": len(ds.Projections),
		"took":        d.now().Sub(start).String(),
	}).Info("datasets loaded")
	return nil
}

func (d *Dashboard) viewOptions() viewOptions {
	return viewOptions{TopPlayers: d.cfg.TopPlayers, GameListLimit: d.cfg.GameListLimit}
}

// Routes builds the HTTP router.
func (d *Dashboard) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(d.requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "HX-Request", "HX-Target", "HX-Current-URL"},
		MaxAge:         300,
	}))

	r.Get("/", d.homeHandler)
	r.Get("/games", d.gamesHandler)
	r.Get("/health", d.healthHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/metrics", d.metricsAPIHandler)
		r.Get("/games", d.gamesAPIHandler)
		r.Get("/projections", d.projectionsAPIHandler)
		r.Post("/reload", d.reloadAPIHandler)
	})

	return r
}

func (d *Dashboard) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		d.log.WithFields(logrus.Fields{
			"request_id": chimiddleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"took":       time.Since(start).String(),
		}).Debug("request")
	})
}

// requestFilter picks the filter from ?filter=, then the cookie, then today.
// A valid query value is remembered in the cookie.
func requestFilter(w http.ResponseWriter, r *http.Request) Filter {
	if f, ok := ParseFilter(r.URL.Query().Get("filter")); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     filterCookie,
			Value:    string(f),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return f
	}
	if c, err := r.Cookie(filterCookie); err == nil {
		if f, ok := ParseFilter(c.Value); ok {
			return f
		}
	}
	return FilterToday
}

func (d *Dashboard) homeHandler(w http.ResponseWriter, r *http.Request) {
	f := requestFilter(w, r)
	data := pageView(d.store.Snapshot(), f, d.now(), d.viewOptions())
	templ.Handler(templates.Page(data)).ServeHTTP(w, r)
}

// gamesHandler serves the schedule fragment swapped in by the filter tabs.
// Metrics and players are not re-rendered.
func (d *Dashboard) gamesHandler(w http.ResponseWriter, r *http.Request) {
	f := requestFilter(w, r)
	snap := d.store.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if !snap.Loaded() {
		w.WriteHeader(http.StatusServiceUnavailable)
		if err := templates.LoadFailed().Render(r.Context(), w); err != nil {
			d.log.WithError(err).Warn("render load failure")
		}
		return
	}

	data := scheduleView(snap.State(f), d.now(), d.viewOptions())
	if err := templates.Schedule(data).Render(r.Context(), w); err != nil {
		d.log.WithError(err).Warn("render schedule")
	}
}

func (d *Dashboard) healthHandler(w http.ResponseWriter, r *http.Request) {
	snap := d.store.Snapshot()
	body := map[string]interface{}{
		"status":      "healthy",
		"service":     "hoops-board",
		"snapshot":    snap.ID,
		"games":       len(snap.Data.Games),
		"projections": len(snap.Data.Projections),
	}
	if !snap.LoadedAt.IsZero() {
		body["loaded_at"] = snap.LoadedAt.UTC()
	}
	if !snap.Loaded() {
		body["status"] = "unavailable"
		if snap.Err != nil {
			body["error"] = snap.Err.Error()
		}
		d.respondJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	d.respondJSON(w, http.StatusOK, body)
}
