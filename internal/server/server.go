package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/tartampluch/go-easter/internal/config"
	"github.com/tartampluch/go-easter/internal/engine"
	"github.com/tartampluch/go-easter/internal/report"
)

// cacheItem stores the rendered rolling feed and its metadata for HTTP caching.
type cacheItem struct {
	year int // Clock year the feed was centred on.
	data []byte
	etag string
}

// CalendarServer serves Easter observances as iCalendar feeds and text reports.
type CalendarServer struct {
	// cache uses atomic.Pointer for lock-free reads.
	// The rolling feed only changes when the year does.
	cache atomic.Pointer[cacheItem]

	Port      string
	Generator *engine.Generator
	Report    report.Writer
	Algorithm engine.Algorithm
	Trigger   string // Optional VALARM trigger, e.g. "-P1D".
}

// NewCalendarServer creates a new instance of the server.
func NewCalendarServer(port string, gen *engine.Generator) *CalendarServer {
	if gen == nil {
		gen = &engine.Generator{Clock: engine.RealClock{}}
	}
	if gen.Clock == nil {
		gen.Clock = engine.RealClock{}
	}
	return &CalendarServer{
		Port:      port,
		Generator: gen,
	}
}

// Router builds the chi route table.
func (s *CalendarServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: config.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
		AllowedHeaders: []string{config.HeaderIfNoneMatch},
		ExposedHeaders: []string{config.HeaderETag},
		MaxAge:         config.CORSMaxAge,
	}))

	r.Get(config.RouteRoot, s.handleFeed)
	r.Get(config.RouteFeed, s.handleFeed)
	r.Get(config.RouteYearICS, s.handleYearCalendar)
	r.Get(config.RouteYearReport, s.handleYearReport)

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	})
	return r
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *CalendarServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return fmt.Errorf(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Router(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Refresh renders the rolling feed for the Clock's current year and stores it.
func (s *CalendarServer) Refresh(ctx context.Context) error {
	_, err := s.refresh(ctx)
	return err
}

func (s *CalendarServer) refresh(ctx context.Context) (*cacheItem, error) {
	now := s.Generator.Clock.Now()
	data, _, err := s.Generator.Render(ctx, engine.CalendarConfig{
		Years:           engine.YearWindow(now),
		Algorithm:       s.Algorithm,
		ReminderTrigger: s.Trigger,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRenderFeed, err)
	}

	item := &cacheItem{year: now.Year(), data: data, etag: etagOf(data)}
	// Any concurrent reader sees either the old or the new complete item.
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyYear, item.year,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, item.etag,
	)
	return item, nil
}

func etagOf(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))
}

// handleFeed serves previous, current and next year, rebuilding on year change.
func (s *CalendarServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	item := s.cache.Load()
	if item == nil || item.year != s.Generator.Clock.Now().Year() {
		var err error
		if item, err = s.refresh(r.Context()); err != nil {
			s.internalError(w, err)
			return
		}
	}
	serve(w, r, config.MimeTextCalendar, item.data, item.etag)
}

func (s *CalendarServer) handleYearCalendar(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	data, _, err := s.Generator.Render(r.Context(), engine.CalendarConfig{
		Years:           []int{year},
		Algorithm:       s.Algorithm,
		ReminderTrigger: s.Trigger,
	})
	if err != nil {
		s.internalError(w, err)
		return
	}
	serve(w, r, config.MimeTextCalendar, data, etagOf(data))
}

func (s *CalendarServer) handleYearReport(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	verbose, _ := strconv.ParseBool(r.URL.Query().Get(config.QueryVerbose))

	var buf bytes.Buffer
	easter := engine.ComputeEasterWith(s.Algorithm, year)
	if err := s.Report.Easter(&buf, year, easter, engine.RelatedObservances(verbose)); err != nil {
		s.internalError(w, err)
		return
	}
	serve(w, r, config.MimeTextPlain, buf.Bytes(), etagOf(buf.Bytes()))
}

// yearParam reads the {year} URL parameter. Years are taken literally here;
// the two-digit shorthand is a command-line convenience only.
func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, config.URLParamYear))
	if err != nil {
		http.Error(w, config.HTTPMsgBadYear, http.StatusBadRequest)
		return 0, false
	}
	return year, true
}

func (s *CalendarServer) internalError(w http.ResponseWriter, err error) {
	slog.Error(config.ErrRenderFeed,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyError, err,
	)
	http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
}

// serve writes data with caching headers, honouring If-None-Match.
func serve(w http.ResponseWriter, r *http.Request, mime string, data []byte, etag string) {
	w.Header().Set(config.HeaderContentType, mime)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderServer, config.UserAgent)
	w.Header().Set(config.HeaderETag, etag)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
