package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"fmpocket/internal/aggregate"
	"fmpocket/internal/config"
	"fmpocket/internal/logging"
	"fmpocket/internal/provider"
	"fmpocket/internal/provider/fmp"
	"fmpocket/internal/provider/fmpadapter"
)

const maxSymbols = 1000

type quotesResponse struct {
	Quotes []provider.Quote `json:"quotes"`
	Errors []string         `json:"errors,omitempty"`
}

type latestResponse struct {
	Latest []aggregate.Latest `json:"latest"`
	Errors []string           `json:"errors,omitempty"`
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(logger)

	client, err := fmp.New(cfg.FMP.APIKey,
		fmp.WithBaseURL(cfg.FMP.BaseURL),
		fmp.WithVersion(cfg.FMP.Version),
		fmp.WithValidation(cfg.FMP.Validate),
		fmp.WithDebug(cfg.FMP.Debug),
		fmp.WithTimeout(cfg.FMP.Timeout()),
		fmp.WithLogger(logger),
	)
	if err != nil {
		logger.Error("fmp client", "error", err)
		os.Exit(1)
	}
	providers := []provider.Provider{
		fmpadapter.New(fmpadapter.Config{Currency: cfg.FMP.Currency, Aftermarket: cfg.FMP.Aftermarket}, client),
	}

	timeout := time.Duration(cfg.Server.RequestTimeoutSec) * time.Second
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           newHandler(providers, timeout, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server", "error", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func newHandler(providers []provider.Provider, timeout time.Duration, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}).Handler)
	r.Use(withJSONHeaders, withGzip, recoverPanic, limitBody)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	quotes := func(w http.ResponseWriter, r *http.Request) {
		symbols, ok := requestSymbols(w, r)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		writeQuotes(w, ctx, providers, symbols, logger)
	}
	latest := func(w http.ResponseWriter, r *http.Request) {
		symbols, ok := requestSymbols(w, r)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		writeLatest(w, ctx, providers, symbols, r.URL.Query().Get("side"), logger)
	}
	r.Route("/api", func(r chi.Router) {
		r.Get("/quotes", quotes)
		r.Post("/quotes", quotes)
		r.Get("/latest", latest)
		r.Post("/latest", latest)
	})
	return r
}

type postBody struct {
	Symbols []string `json:"symbols"`
}

// requestSymbols reads symbols from the query of a GET or the body of a POST.
// On failure the response has been written.
func requestSymbols(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var symbols []string
	switch r.Method {
	case http.MethodGet:
		symbols = config.SplitCSV(r.URL.Query().Get("symbols"))
		if len(symbols) == 0 {
			http.Error(w, "missing symbols query param", http.StatusBadRequest)
			return nil, false
		}
	case http.MethodPost:
		var b postBody
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&b); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return nil, false
		}
		symbols = config.SplitCSV(strings.Join(b.Symbols, ","))
		if len(symbols) == 0 {
			http.Error(w, "symbols cannot be empty", http.StatusBadRequest)
			return nil, false
		}
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	if len(symbols) > maxSymbols {
		http.Error(w, "too many symbols (max 1000)", http.StatusBadRequest)
		return nil, false
	}
	return symbols, true
}

// fetchAll fans out to providers concurrently and collects partial results.
func fetchAll(ctx context.Context, providers []provider.Provider, symbols []string, logger *slog.Logger) ([]provider.Quote, []string) {
	type result struct {
		name   string
		quotes []provider.Quote
		err    error
	}
	ch := make(chan result, len(providers))
	for _, p := range providers {
		go func() {
			qs, err := p.Fetch(ctx, symbols)
			ch <- result{p.Name(), qs, err}
		}()
	}

	var all []provider.Quote
	var errs []string
	for range providers {
		r := <-ch
		if r.err != nil {
			logger.Warn("provider failed", "provider", r.name, "error", r.err)
			errs = append(errs, r.name+": "+r.err.Error())
			continue
		}
		all = append(all, r.quotes...)
	}
	return all, errs
}

func writeQuotes(w http.ResponseWriter, ctx context.Context, providers []provider.Provider, symbols []string, logger *slog.Logger) {
	all, errs := fetchAll(ctx, providers, symbols, logger)
	if len(all) == 0 && len(errs) > 0 {
		http.Error(w, strings.Join(errs, "; "), http.StatusBadGateway)
		return
	}
	writeJSON(w, quotesResponse{Quotes: all, Errors: errs})
}

// writeLatest keeps the newest quote per exchange. side is one of all, last,
// bid or ask; "all" and "" collapse sides.
func writeLatest(w http.ResponseWriter, ctx context.Context, providers []provider.Provider, symbols []string, side string, logger *slog.Logger) {
	side = strings.ToLower(strings.TrimSpace(side))
	switch side {
	case "", "all", "last", "bid", "ask":
	default:
		http.Error(w, "side must be all, last, bid or ask", http.StatusBadRequest)
		return
	}

	all, errs := fetchAll(ctx, providers, symbols, logger)
	if len(all) == 0 && len(errs) > 0 {
		http.Error(w, strings.Join(errs, "; "), http.StatusBadGateway)
		return
	}

	var latest []aggregate.Latest
	if side == "" || side == "all" {
		latest = aggregate.LatestByMarket(all, false)
	} else {
		for _, l := range aggregate.LatestByMarket(all, true) {
			if l.Side == side {
				latest = append(latest, l)
			}
		}
	}
	if latest == nil {
		latest = []aggregate.Latest{}
	}
	writeJSON(w, latestResponse{Latest: latest, Errors: errs})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func withJSONHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// withGzip compresses response when client supports gzip.
func withGzip(next http.Handler) http.Handler {
	var gzPool = sync.Pool{New: func() any {
		w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
		return w
	}}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}
		gz := gzPool.Get().(*gzip.Writer)
		gz.Reset(w)
		defer func() {
			_ = gz.Close()
			gz.Reset(io.Discard)
			gzPool.Put(gz)
		}()
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")
		next.ServeHTTP(gzipResponseWriter{ResponseWriter: w, Writer: gz}, r)
	})
}

type gzipResponseWriter struct {
	http.ResponseWriter
	Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) {
	return g.Writer.Write(b)
}

// limitBody caps request body size.
func limitBody(next http.Handler) http.Handler {
	const maxBody = 1 << 20 // 1MB
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		}
		next.ServeHTTP(w, r)
	})
}

// recoverPanic protects handlers from panics.
func recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
