package httpadapter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/PabloGalante/wellbeing-insights/internal/app/insights"
	"github.com/PabloGalante/wellbeing-insights/internal/domain"
	"github.com/PabloGalante/wellbeing-insights/internal/observability"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const serverName = "wellbeing-insights (net/http)"

type Server struct {
	svc      *insights.Service
	now      func() time.Time
	hostname func() (string, error)
}

func NewServer(svc *insights.Service) http.Handler {
	s := &Server{
		svc:      svc,
		now:      time.Now,
		hostname: os.Hostname,
	}
	return s.routes()
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// /health → process status (GET)
	mux.HandleFunc("/health", s.handleHealth)

	// /get_mental_health_insights → generate insights (POST)
	mux.HandleFunc("/get_mental_health_insights", s.handleInsights)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		notFound(w)
	})

	return chainMiddlewares(mux,
		withRecover,
		withLogging,
		withCORS,
		withRequestID,
	)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

// insightRequest keeps every field raw so that any JSON value is accepted.
type insightRequest struct {
	WeeklyMoods     jsoniter.RawMessage `json:"weekly_moods"`
	ScreenTime      jsoniter.RawMessage `json:"screen_time"`
	UnlockCount     jsoniter.RawMessage `json:"unlock_count"`
	MostUsedApp     jsoniter.RawMessage `json:"most_used_app"`
	MoodDescription jsoniter.RawMessage `json:"mood_description"`
	Profession      jsoniter.RawMessage `json:"profession"`
	Gender          jsoniter.RawMessage `json:"gender"`
	Age             jsoniter.RawMessage `json:"age"`
}

type insightResponse struct {
	Success               bool    `json:"success"`
	Insights              string  `json:"insights"`
	Mode                  string  `json:"mode"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
}

type insightErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type healthResponse struct {
	Status           string     `json:"status"`
	AIStatus         string     `json:"ai_status"`
	APIKeyConfigured bool       `json:"api_key_configured"`
	Model            string     `json:"model,omitempty"`
	Timestamp        string     `json:"timestamp"`
	ServerInfo       serverInfo `json:"server_info"`
}

type serverInfo struct {
	Platform  string `json:"platform"`
	GoVersion string `json:"go_version"`
	Server    string `json:"server"`
	Version   string `json:"version"`
	Hostname  string `json:"hostname"`
}

type healthErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w)
		return
	}

	resp, err := s.healthStatus()
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error("error in health check", "error", err)
		writeJSON(w, http.StatusInternalServerError, healthErrorResponse{
			Status: "error",
			Error:  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) healthStatus() (resp healthResponse, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("health check panicked: %v", rec)
		}
	}()

	host, err := s.hostname()
	if err != nil {
		return healthResponse{}, fmt.Errorf("reading hostname: %w", err)
	}

	cfg := s.svc.Config()

	aiStatus := "disabled"
	if cfg.AIEnabled() {
		aiStatus = "active"
	}

	return healthResponse{
		Status:           "healthy",
		AIStatus:         aiStatus,
		APIKeyConfigured: cfg.CredentialPresent,
		Model:            cfg.ModelName,
		Timestamp:        s.now().Format(time.RFC3339Nano),
		ServerInfo: serverInfo{
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			GoVersion: runtime.Version(),
			Server:    serverName,
			Version:   buildVersion(),
			Hostname:  host,
		},
	}, nil
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	start := s.now()
	ctx := r.Context()
	log := observability.LoggerFromContext(ctx)

	req, err := decodeInsightRequest(r.Body)
	if err != nil {
		insightsError(w, r, err)
		return
	}

	log.Info("received insights request",
		"screen_time", req.ScreenTime,
		"unlock_count", req.UnlockCount,
		"most_used_app", req.MostUsedApp,
	)
	log.Debug("received insights data", "request", req)

	out, err := s.svc.GenerateInsights(ctx, req)
	if err != nil {
		insightsError(w, r, err)
		return
	}

	elapsed := s.now().Sub(start).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	log.Info("request processed", "mode", out.Mode, "processing_time_seconds", elapsed)

	writeJSON(w, http.StatusOK, insightResponse{
		Success:               true,
		Insights:              out.Text,
		Mode:                  string(out.Mode),
		ProcessingTimeSeconds: elapsed,
	})
}

// ─────────────────────────────────────────────
// Request decoding
// ─────────────────────────────────────────────

func decodeInsightRequest(body io.Reader) (domain.InsightRequest, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return domain.InsightRequest{}, domain.NewInsightError(domain.KindInvalidRequest, "reading request body: %w", err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return domain.InsightRequest{}, &domain.InsightError{
			Kind: domain.KindInvalidRequest,
			Err:  errors.New("request body must be a JSON object"),
		}
	}

	var dto insightRequest
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domain.InsightRequest{}, domain.NewInsightError(domain.KindInvalidRequest, "invalid JSON body: %w", err)
	}

	req := domain.NewInsightRequest()
	setField(&req.WeeklyMoods, dto.WeeklyMoods)
	setField(&req.ScreenTime, dto.ScreenTime)
	setField(&req.UnlockCount, dto.UnlockCount)
	setField(&req.MostUsedApp, dto.MostUsedApp)
	setField(&req.MoodDescription, dto.MoodDescription)
	setField(&req.Profession, dto.Profession)
	setField(&req.Gender, dto.Gender)
	setField(&req.Age, dto.Age)

	return req, nil
}

// setField overwrites dst only when the client sent a non-null value, so
// absent keys keep domain.Unknown.
func setField(dst *string, raw jsoniter.RawMessage) {
	if s, ok := fieldText(raw); ok {
		*dst = s
	}
}

// fieldText turns one raw JSON value into text: strings are unquoted, any
// other value is kept as the client wrote it. ok is false for absent or null.
func fieldText(raw jsoniter.RawMessage) (s string, ok bool) {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return "", false
	}

	if v[0] == '"' {
		if err := json.Unmarshal(v, &s); err == nil {
			return s, true
		}
	}

	return string(v), true
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// insightsError answers 500 for every failure kind; the kind only goes to the log.
func insightsError(w http.ResponseWriter, r *http.Request, err error) {
	observability.LoggerFromContext(r.Context()).Error("error generating mental health insights",
		"error", err,
		"kind", domain.KindOf(err),
	)

	writeJSON(w, http.StatusInternalServerError, insightErrorResponse{
		Success: false,
		Error:   err.Error(),
	})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": "not found",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
