// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server is the HTTP routing layer: it maps requests to resolver,
// dispatcher, and planner calls and serializes their typed outcomes and
// faults to status codes. No resolution logic lives here.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/legifrance-proxy/internal/dispatch"
	"github.com/pdiddy/legifrance-proxy/internal/history"
	"github.com/pdiddy/legifrance-proxy/internal/metrics"
	"github.com/pdiddy/legifrance-proxy/internal/piste"
	"github.com/pdiddy/legifrance-proxy/internal/plan"
	"github.com/pdiddy/legifrance-proxy/internal/resolve"
	"github.com/pdiddy/legifrance-proxy/pkg/types"
)

// Server holds the wired collaborators. Planner and history are optional;
// nil disables the corresponding routes gracefully.
type Server struct {
	log        *zap.Logger
	resolver   *resolve.Resolver
	dispatcher *dispatch.Dispatcher
	planner    *plan.Planner
	hist       *history.Store
}

func New(log *zap.Logger, resolver *resolve.Resolver, dispatcher *dispatch.Dispatcher, planner *plan.Planner, hist *history.Store) *Server {
	return &Server{
		log:        log,
		resolver:   resolver,
		dispatcher: dispatcher,
		planner:    planner,
		hist:       hist,
	}
}

// Router wires all public endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(logRequests(s.log))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/resolve", func(r chi.Router) {
		r.Get("/ping", pingHandler("resolve"))
		r.Get("/code-article", s.handleCodeArticle)
		r.Post("/dispatch", s.handleDispatch)
	})

	r.Route("/query", func(r chi.Router) {
		r.Get("/ping", pingHandler("query"))
	})

	r.Post("/plan", s.handlePlan)

	return r
}

// NewHTTPServer builds an http.Server with sane defaults around the router.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pingHandler(scope string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"scope": scope, "status": "ok"})
	}
}

// handleCodeArticle resolves one code+article(+date) hint from query
// parameters: Resolved→200, TooBroad→400, NotFound→404, Ambiguous→409;
// faults map through writeFault.
func (s *Server) handleCodeArticle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	code, article, date := q.Get("code"), q.Get("article"), q.Get("date")

	outcome, err := s.resolver.ResolveCodeArticle(r.Context(), code, article, date)
	if err != nil {
		metrics.Resolutions.WithLabelValues("error").Inc()
		s.writeFault(w, r, err)
		return
	}
	metrics.Resolutions.WithLabelValues(outcome.Kind()).Inc()
	s.record(r, code, article, date, outcome)

	switch o := outcome.(type) {
	case resolve.Resolved:
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":           true,
			"legiarti_id":  o.Article.LegiartiID,
			"title":        o.Article.Title,
			"article":      o.Article.ArticleNum,
			"date_version": o.Article.DateVersion,
			"raw":          o.Article.Raw,
		})
	case resolve.TooBroad:
		writeOutcomeError(w, http.StatusBadRequest, types.ErrTooBroad, o.Message, nil)
	case resolve.NotFound:
		writeOutcomeError(w, http.StatusNotFound, types.ErrNotFound, o.Message, nil)
	case resolve.Ambiguous:
		writeOutcomeError(w, http.StatusConflict, types.ErrAmbiguous, o.Message, o.Candidates)
	}
}

// dispatchStatus maps dispatcher error codes to HTTP statuses. Intent
// short-circuits (NOT_LEGAL, TOO_VAGUE) are successful classifications
// for the upstream automation and stay 200.
var dispatchStatus = map[string]int{
	types.ErrNotFound:       http.StatusNotFound,
	types.ErrAmbiguous:      http.StatusConflict,
	types.ErrTooBroad:       http.StatusBadRequest,
	types.ErrWrongRoute:     http.StatusBadRequest,
	types.ErrNotImplemented: http.StatusNotImplemented,
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var payload types.IntentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeOutcomeError(w, http.StatusBadRequest, "BAD_REQUEST", "body is not a valid intent payload", nil)
		return
	}

	resp, err := s.dispatcher.Dispatch(r.Context(), payload)
	if err != nil {
		s.writeFault(w, r, err)
		return
	}

	status := http.StatusOK
	if !resp.OK {
		if mapped, ok := dispatchStatus[resp.Error]; ok {
			status = mapped
		}
	}
	writeJSON(w, status, resp)
}

// planRequest bounds match the upstream contract.
type planRequest struct {
	Question string `json:"question"`
	AsOf     string `json:"as_of,omitempty"`
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	if s.planner == nil {
		writeOutcomeError(w, http.StatusServiceUnavailable, "PLAN_DISABLED", "plan pipeline is not configured", nil)
		return
	}

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOutcomeError(w, http.StatusBadRequest, "BAD_REQUEST", "body is not a valid plan request", nil)
		return
	}
	if n := len(req.Question); n < 3 || n > 4000 {
		writeOutcomeError(w, http.StatusBadRequest, "BAD_REQUEST", "question must be between 3 and 4000 characters", nil)
		return
	}

	result, err := s.planner.Plan(r.Context(), req.Question, req.AsOf)
	if err != nil {
		var vf *plan.ValidationFailedError
		if errors.As(err, &vf) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"ok":       false,
				"error":    "LLM_VALIDATION_FAILED",
				"errors":   vf.Errors,
				"warnings": vf.Warnings,
			})
			return
		}
		s.writeFault(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// record appends the outcome to the history log when one is configured.
func (s *Server) record(r *http.Request, code, article, date string, outcome resolve.Outcome) {
	if s.hist == nil {
		return
	}
	entry := history.Entry{
		CodeHint:    code,
		ArticleHint: article,
		DateHint:    date,
		Outcome:     outcome.Kind(),
	}
	switch o := outcome.(type) {
	case resolve.Resolved:
		entry.LegiartiID = o.Article.LegiartiID
	case resolve.NotFound:
		entry.Message = o.Message
	case resolve.TooBroad:
		entry.Message = o.Message
	case resolve.Ambiguous:
		entry.Message = o.Message
	}
	if err := s.hist.Record(r.Context(), entry); err != nil {
		s.log.Warn("history record failed", zap.Error(err), zap.String("request_id", RequestID(r.Context())))
	}
}

// writeFault maps transport faults to 5xx-class responses: auth failures
// 500, exhausted retries 503, remote API errors 502.
func (s *Server) writeFault(w http.ResponseWriter, r *http.Request, err error) {
	var (
		authErr      *piste.AuthError
		apiErr       *piste.APIError
		exhaustedErr *piste.ExhaustedError
	)

	status, code := http.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.As(err, &authErr):
		status, code = http.StatusInternalServerError, "AUTH_FAILED"
	case errors.As(err, &exhaustedErr):
		status, code = http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE"
	case errors.As(err, &apiErr):
		status, code = http.StatusBadGateway, "UPSTREAM_ERROR"
	}

	s.log.Error("request failed",
		zap.String("code", code),
		zap.Error(err),
		zap.String("request_id", RequestID(r.Context())),
	)
	writeOutcomeError(w, status, code, err.Error(), nil)
}

func writeOutcomeError(w http.ResponseWriter, status int, code, message string, candidates []types.Candidate) {
	body := map[string]any{"ok": false, "error": code, "message": message}
	if candidates != nil {
		body["candidates"] = candidates
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
