package authserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskflow/internal/logfields"
	"taskflow/internal/metrics"
)

const (
	msgMissingFields  = "Username and password are required"
	msgInvalidLogin   = "Invalid username or password"
	msgUsernameTaken  = "Username already exists"
	msgBadBody        = "Invalid request body"
	msgUnauthorized   = "Authentication required"
	msgInternalError  = "Internal server error"
	maxRequestBodyLen = 1 << 20
)

// Server serves the development API.
type Server struct {
	users   *Users
	tokens  *tokens
	tasks   *taskBoard
	logger  *slog.Logger
	metrics metrics.Recorder
	reg     *prom.Registry
}

// New returns a server backed by users. reg may be nil, in which case
// /metrics is not mounted.
func New(users *Users, logger *slog.Logger, reg *prom.Registry) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	var rec metrics.Recorder = metrics.NoopRecorder{}
	if reg != nil {
		rec = metrics.NewPrometheusRecorder(reg, "taskflowd")
	}
	return &Server{
		users:   users,
		tokens:  newTokens(),
		tasks:   newTaskBoard(),
		logger:  logger,
		metrics: rec,
		reg:     reg,
	}
}

// Handler returns the routed, access-logged handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/tasks", s.handleTasks)
	if s.reg != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	}
	return s.accessLog(mux)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	User  User   `json:"user"`
	Token string `json:"token,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyLen)).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgBadBody)
		return req, false
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, msgMissingFields)
		return req, false
	}
	return req, true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncAuthAttempt("register")
	req, ok := s.decodeCredentials(w, r)
	if !ok {
		s.metrics.IncAuthResult("register", metrics.ResultFailure)
		return
	}
	user, err := s.users.Create(req.Username, []byte(req.Password))
	switch {
	case errors.Is(err, ErrUsernameTaken):
		s.metrics.IncAuthResult("register", metrics.ResultFailure)
		writeMessage(w, http.StatusConflict, msgUsernameTaken)
		return
	case err != nil:
		s.metrics.IncAuthResult("register", metrics.ResultFailure)
		s.logger.Error("register failed", logfields.Username(req.Username), logfields.Error(err))
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	s.tasks.seed(user.ID)
	s.metrics.IncAuthResult("register", metrics.ResultSuccess)
	s.logger.Info("account created", logfields.Username(user.Username))
	writeJSON(w, http.StatusCreated, userResponse{User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncAuthAttempt("login")
	req, ok := s.decodeCredentials(w, r)
	if !ok {
		s.metrics.IncAuthResult("login", metrics.ResultFailure)
		return
	}
	user, err := s.users.Authenticate(req.Username, []byte(req.Password))
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		s.metrics.IncAuthResult("login", metrics.ResultFailure)
		writeMessage(w, http.StatusUnauthorized, msgInvalidLogin)
		return
	case err != nil:
		s.metrics.IncAuthResult("login", metrics.ResultFailure)
		s.logger.Error("login failed", logfields.Username(req.Username), logfields.Error(err))
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	s.metrics.IncAuthResult("login", metrics.ResultSuccess)
	writeJSON(w, http.StatusOK, userResponse{User: user, Token: s.tokens.issue(user)})
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	user, ok := s.tokens.lookup(strings.TrimSpace(tok))
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, s.tasks.list(user.ID))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// statusRecorder captures the status and size written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
			slog.Int(logfields.KeyStatus, rec.status),
			slog.Int("bytes", rec.bytes),
			logfields.DurationMS(time.Since(start).Milliseconds()),
		)
	})
}
