package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/analysis"
	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/config"
	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/csv"
	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/parser"
	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/store"
	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/summary"
)

// Server hosts the ingestion pipeline over HTTP: one upload endpoint that
// builds the canonical table, view endpoints that project it, and the AI
// summary endpoint. Parsed tables are cached by content hash for the process
// lifetime.
type Server struct {
	config     *config.Config
	logger     *log.Logger
	mux        *http.ServeMux
	template   *template.Template
	parser     *parser.Parser
	store      *store.Store
	summarizer *summary.Summarizer
}

// New creates a new HTTP server.
func New(cfg *config.Config, logger *log.Logger) *Server {
	tmpl, err := template.ParseGlob("templates/*.html")
	if err != nil {
		logger.Warn("templates not found, serving a bare page", "err", err)
		tmpl = template.Must(template.New("index.html").Parse("<html><body><h1>Finance Tracker</h1></body></html>"))
	}
	return &Server{
		config:     cfg,
		logger:     logger,
		mux:        http.NewServeMux(),
		template:   tmpl,
		parser:     parser.New(logger),
		store:      store.New(),
		summarizer: summary.New(logger, cfg.GeminiModel),
	}
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}

// Handler wires the routes and returns the root handler.
func (s *Server) Handler() http.Handler {
	s.setupRoutes()
	return s.mux
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/", s.withLogging(s.handleHome))
	s.mux.HandleFunc("/api/process", s.withLogging(s.handleProcess))
	s.mux.HandleFunc("/api/tables/", s.withLogging(s.handleTables))
	s.mux.HandleFunc("/api/summary", s.withLogging(s.handleSummary))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if err := s.template.ExecuteTemplate(w, "index.html", nil); err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to render page", err)
	}
}

// ---------------- upload handler ----------------

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	file, header, err := r.FormFile("export")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "export file required", err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to read file", err)
		return
	}

	// Same bytes, same table: reuse the cached parse.
	hash := parser.ContentHash(data)
	dataset, ok := s.store.Dataset(hash)
	if !ok {
		dataset, err = s.parser.ProcessBytes(data, header.Filename)
		if err != nil {
			status, msg := classifyParseError(err)
			s.respondError(w, r, status, msg, err)
			return
		}
		s.store.PutDataset(dataset)
	}

	resp := map[string]interface{}{
		"status": "success",
		"hash":   dataset.Hash,
		"kind":   dataset.Kind,
		"rows":   len(dataset.Transactions) + len(dataset.Ledger),
	}
	if dataset.Kind == models.SourceWallet {
		table := analysis.NewTable(dataset.Transactions)
		min, max := table.AmountRange()
		resp["months"] = table.Months()
		resp["amount_min"] = min
		resp["amount_max"] = max
	}
	if err := s.writeJSON(w, http.StatusOK, resp); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func classifyParseError(err error) (int, string) {
	switch {
	case errors.Is(err, parser.ErrSourceNotFound):
		return http.StatusNotFound, "activity export not found in archive"
	case errors.Is(err, parser.ErrSchema):
		return http.StatusBadRequest, "required columns missing"
	case errors.Is(err, parser.ErrUnsupportedFormat):
		return http.StatusBadRequest, "unsupported file format"
	default:
		return http.StatusInternalServerError, "failed to process file"
	}
}

// ---------------- view handlers ----------------

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/tables/")
	hash, tail, _ := strings.Cut(rest, "/")
	if hash == "" {
		s.respondError(w, r, http.StatusBadRequest, "table hash required", nil)
		return
	}

	dataset, ok := s.store.Dataset(hash)
	if !ok {
		s.respondError(w, r, http.StatusNotFound, "table not found", nil)
		return
	}

	if dataset.Kind == models.SourceLedger {
		s.respondLedger(w, r, dataset, tail)
		return
	}

	view, viewKey, err := buildView(dataset, r.URL.Query())
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if tail == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", viewKey+".csv"))
		if _, err := w.Write(csv.Create(view.Rows(), nil)); err != nil {
			s.logger.Warn("failed to write csv response", "err", err)
		}
		return
	}

	resp := map[string]interface{}{
		"status":       "success",
		"view":         viewKey,
		"transactions": view.Rows(),
		"metrics":      view.Metrics(),
		"by_hour":      view.ByHour(),
		"by_weekday":   view.ByWeekday(),
	}
	if anchor := r.URL.Query().Get("week"); anchor != "" {
		if d, err := time.Parse("2006-01-02", anchor); err == nil {
			start, end := analysis.WeekBounds(d)
			resp["week_start"] = start.Format("2006-01-02")
			resp["week_end"] = end.Format("2006-01-02")
		}
	}
	if err := s.writeJSON(w, http.StatusOK, resp); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) respondLedger(w http.ResponseWriter, r *http.Request, dataset *models.Dataset, tail string) {
	if tail == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=\"ledger.csv\"")
		if _, err := w.Write(csv.CreateLedger(dataset.Ledger)); err != nil {
			s.logger.Warn("failed to write csv response", "err", err)
		}
		return
	}

	debit, credit, closing := analysis.LedgerTotals(dataset.Ledger)
	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "success",
		"entries":       dataset.Ledger,
		"daily_debit":   analysis.LedgerDailyDebit(dataset.Ledger),
		"weekday_debit": analysis.LedgerWeekdayDebit(dataset.Ledger),
		"total_debit":   debit,
		"total_credit":  credit,
		"closing":       closing,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// buildView applies the user-selected day/week/month window plus the search
// and amount-range filters, all ANDed. The returned key identifies the view
// for summary memoization.
func buildView(dataset *models.Dataset, q url.Values) (*analysis.Table, string, error) {
	table := analysis.NewTable(dataset.Transactions)
	parts := []string{"all"}

	if v := q.Get("day"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, "", fmt.Errorf("invalid day %q", v)
		}
		table = table.Day(d)
		parts = []string{"day-" + v}
	} else if v := q.Get("week"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, "", fmt.Errorf("invalid week anchor %q", v)
		}
		table = table.Week(d)
		start, _ := analysis.WeekBounds(d)
		parts = []string{"week-" + start.Format("2006-01-02")}
	} else if v := q.Get("month"); v != "" {
		table = table.Month(v)
		parts = []string{"month-" + v}
	}

	if v := q.Get("q"); v != "" {
		table = table.Search(v)
		parts = append(parts, "q-"+v)
	}
	minStr, maxStr := q.Get("min"), q.Get("max")
	if minStr != "" || maxStr != "" {
		min, max := table.AmountRange()
		if minStr != "" {
			v, err := strconv.ParseFloat(minStr, 64)
			if err != nil {
				return nil, "", fmt.Errorf("invalid min %q", minStr)
			}
			min = v
		}
		if maxStr != "" {
			v, err := strconv.ParseFloat(maxStr, 64)
			if err != nil {
				return nil, "", fmt.Errorf("invalid max %q", maxStr)
			}
			max = v
		}
		table = table.AmountBetween(min, max)
		parts = append(parts, fmt.Sprintf("amt-%s-%s", minStr, maxStr))
	}

	return table, strings.Join(parts, "-"), nil
}

// ---------------- summary handler ----------------

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	hash := r.FormValue("hash")
	if hash == "" {
		s.respondError(w, r, http.StatusBadRequest, "hash required", nil)
		return
	}
	dataset, ok := s.store.Dataset(hash)
	if !ok {
		s.respondError(w, r, http.StatusNotFound, "table not found", nil)
		return
	}
	if dataset.Kind != models.SourceWallet {
		s.respondError(w, r, http.StatusBadRequest, "summaries only apply to transaction tables", nil)
		return
	}

	view, viewKey, err := buildView(dataset, r.Form)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if view.Len() == 0 {
		s.respondError(w, r, http.StatusBadRequest, "nothing to summarize: empty view", nil)
		return
	}

	key := store.SummaryKey(viewKey, hash)
	text, cached := s.store.Summary(key)
	if !cached {
		text, err = s.summarizer.Summarize(r.Context(), view)
		if err != nil {
			s.respondError(w, r, http.StatusBadGateway, "failed to generate summary", err)
			return
		}
		s.store.PutSummary(key, text)
	}

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"view":    viewKey,
		"cached":  cached,
		"summary": text,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// --- helpers ---

// writeJSON encodes v as JSON with the given status and writes headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// respondError logs the error and returns a minimal JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// withLogging wraps a handler to log request start/end and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}
