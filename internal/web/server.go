// Package web serves the single-screen bedtime form.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"betterrest/internal/bedtime"
	"betterrest/internal/form"
)

// Options configures a Server.
type Options struct {
	Estimator *bedtime.Estimator
	Layout    string
	Defaults  form.Defaults
	Version   string

	// Registry receives the server metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// Server renders the form and answers estimate requests.
type Server struct {
	est      *bedtime.Estimator
	layout   string
	defaults form.Defaults
	version  string

	tpl      *template.Template
	metrics  *Metrics
	registry *prometheus.Registry
}

// PageData feeds the page template.
type PageData struct {
	Wake   string
	Sleep  string
	Coffee string

	SleepLabel string
	CupsLabel  string

	MinSleep  float64
	MaxSleep  float64
	SleepStep float64
	MaxCoffee int

	Version string

	Error  string
	Result *bedtime.Message

	// Share text: meta description when Result is set (for link previews).
	ShareDescription string
}

// EstimateResponse is the JSON body of /api/estimate.
type EstimateResponse struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Bedtime string `json:"bedtime,omitempty"`
	Hours   int    `json:"hours"`
	Minutes int    `json:"minutes"`
}

// New returns a Server.
func New(opts Options) *Server {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if opts.Defaults == (form.Defaults{}) {
		opts.Defaults = form.Standard
	}
	return &Server{
		est:      opts.Estimator,
		layout:   opts.Layout,
		defaults: opts.Defaults,
		version:  opts.Version,
		tpl:      template.Must(template.New("page").Parse(pageHTML)),
		metrics:  NewMetrics(reg),
		registry: reg,
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", s.handleIndex)
	r.Post("/calc", s.handleCalc)
	r.Get("/api/estimate", s.handleEstimate)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// ListenAndServe serves on port until the listener fails.
func (s *Server) ListenAndServe(port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := form.Input{
		Wake:   q.Get("wake"),
		Sleep:  q.Get("sleep"),
		Coffee: q.Get("coffee"),
	}
	data := s.pageData(in)

	req, err := form.Parse(in, s.defaults)
	if err != nil {
		s.metrics.observe(outcomeInvalidInput, 0)
		data.Error = err.Error()
		s.render(w, data)
		return
	}
	s.fillLabels(&data, req)

	msg := s.estimate(r, req)
	data.Result = &msg
	if msg.OK {
		data.ShareDescription = msg.Body
	}
	s.render(w, data)
}

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	in := form.Input{
		Wake:   strings.TrimSpace(r.FormValue("wake")),
		Sleep:  strings.TrimSpace(r.FormValue("sleep")),
		Coffee: strings.TrimSpace(r.FormValue("coffee")),
	}
	req, err := form.Parse(in, s.defaults)
	if err != nil {
		s.metrics.observe(outcomeInvalidInput, 0)
		data := s.pageData(in)
		data.Error = err.Error()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, data)
		return
	}

	// Redirect to GET with query params (only non-defaults) so the URL reflects the calculation.
	http.Redirect(w, r, s.buildEstimateURL(req), http.StatusFound)
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req, err := form.Parse(form.Input{
		Wake:   q.Get("wake"),
		Sleep:  q.Get("sleep"),
		Coffee: q.Get("coffee"),
	}, s.defaults)
	if err != nil {
		s.metrics.observe(outcomeInvalidInput, 0)
		writeJSON(w, http.StatusBadRequest, EstimateResponse{Title: bedtime.FailureTitle, Message: err.Error()})
		return
	}

	res, err := s.est.Estimate(req)
	s.logOutcome(r, req, res, err)
	if err != nil {
		f := bedtime.Failure()
		writeJSON(w, http.StatusServiceUnavailable, EstimateResponse{Title: f.Title, Message: f.Body})
		return
	}

	msg := bedtime.Describe(res, s.layout)
	h, m := res.Breakdown()
	writeJSON(w, http.StatusOK, EstimateResponse{
		Title:   msg.Title,
		Message: msg.Body,
		Bedtime: res.Bedtime.Format(s.layout),
		Hours:   h,
		Minutes: m,
	})
}

// estimate runs one prediction and collapses any failure into the fixed message.
func (s *Server) estimate(r *http.Request, req bedtime.Request) bedtime.Message {
	res, err := s.est.Estimate(req)
	s.logOutcome(r, req, res, err)
	return bedtime.Present(res, err, s.layout)
}

func (s *Server) logOutcome(r *http.Request, req bedtime.Request, res bedtime.Result, err error) {
	logger := logrus.WithFields(logrus.Fields{
		"request_id": requestID(r),
		"wake":       req.Wake.Format(bedtime.Clock24),
		"sleep":      req.SleepHours,
		"coffee":     req.CoffeeCups,
	})
	if err != nil {
		s.metrics.observe(outcomeFailure, 0)
		logger.WithError(err).Warnln("web: cannot estimate bedtime")
		return
	}
	s.metrics.observe(outcomeSuccess, res.ActualSleepSeconds)
	logger.WithField("bedtime", res.Bedtime.String()).Debugln("web: estimated bedtime")
}

func (s *Server) pageData(in form.Input) PageData {
	return PageData{
		Wake:      orDefault(in.Wake, s.defaults.Wake),
		Sleep:     orDefault(in.Sleep, formatHours(s.defaults.Sleep)),
		Coffee:    orDefault(in.Coffee, strconv.Itoa(s.defaults.Coffee)),
		MinSleep:  form.MinSleep,
		MaxSleep:  form.MaxSleep,
		SleepStep: form.SleepStep,
		MaxCoffee: form.MaxCoffee,
		Version:   s.version,
	}
}

func (s *Server) fillLabels(data *PageData, req bedtime.Request) {
	data.Wake = req.Wake.Format(bedtime.Clock24)
	data.Sleep = formatHours(req.SleepHours)
	data.Coffee = strconv.Itoa(req.CoffeeCups)
	data.SleepLabel = form.SleepLabel(req.SleepHours)
	data.CupsLabel = form.CupsLabel(req.CoffeeCups)
}

func (s *Server) render(w http.ResponseWriter, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.Execute(w, data); err != nil {
		logrus.WithError(err).Errorln("web: cannot render page")
	}
}

// buildEstimateURL returns "/?wake=..." and only adds other params when not default.
func (s *Server) buildEstimateURL(req bedtime.Request) string {
	v := url.Values{}
	v.Set("wake", req.Wake.Format(bedtime.Clock24))
	if req.SleepHours != s.defaults.Sleep {
		v.Set("sleep", formatHours(req.SleepHours))
	}
	if req.CoffeeCups != s.defaults.Coffee {
		v.Set("coffee", strconv.Itoa(req.CoffeeCups))
	}
	return "/?" + v.Encode()
}

const requestIDHeader = "X-Request-ID"

type ctxKey struct{}

func contextWithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

// requestLogger tags the request with an id and logs it once served.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		r = r.WithContext(contextWithID(r.Context(), id))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		logrus.WithFields(logrus.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"latency":    time.Since(start),
		}).Debugln("web: request served")
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Debugln("web: cannot write response")
	}
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func orDefault(val, def string) string {
	if strings.TrimSpace(val) == "" {
		return def
	}
	return strings.TrimSpace(val)
}
