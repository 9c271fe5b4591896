// Package devapi is a local stand-in for the profile backend. It implements
// the same two endpoints the client uses, backed by a configured user list.
package devapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/jask/idcard/internal/api"
)

type Server struct {
	l          *log.Logger
	dir        *Directory
	tokens     *Issuer
	httpServer *http.Server
}

func NewServer(addr string, dir *Directory, tokens *Issuer, l *log.Logger) *Server {
	s := &Server{l: l, dir: dir, tokens: tokens}
	s.httpServer = &http.Server{
		Handler: s.Routes(),
		Addr:    addr,
	}
	return s
}

// Routes exposes the mux for tests.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Pong!"))
	})
	mux.HandleFunc("POST /credentials", s.credentials)
	mux.HandleFunc("GET /user", s.user)

	return mux
}

func (s *Server) Run() error {
	s.l.Info("starting", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.l.Info("shutting down")
	return s.httpServer.Shutdown(ctx)
}

type message struct {
	Message string `json:"message"`
}

func (s *Server) credentials(w http.ResponseWriter, r *http.Request) {
	body, ok := parseBody[api.Credentials](w, r)
	if !ok {
		return
	}

	profile, err := s.dir.Authenticate(body.Username, body.Password)
	if err != nil {
		s.l.Warn("login refused", "user", body.Username)
		writeJSON(w, http.StatusUnauthorized, message{Message: "invalid credentials"})
		return
	}

	token, err := s.tokens.Issue(profile.UUID)
	if err != nil {
		s.l.Error("sign token", "err", err)
		writeJSON(w, http.StatusInternalServerError, message{Message: "could not issue token"})
		return
	}

	s.l.Info("login", "user", body.Username)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// user answers {} for any authentication problem; clients treat an empty
// object as a refused token.
func (s *Server) user(w http.ResponseWriter, r *http.Request) {
	subject, err := s.tokens.Verify(r.Header.Get("Authorization"))
	if err != nil {
		s.l.Debug("token refused", "err", err)
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}

	profile, err := s.dir.ByID(subject)
	if err != nil {
		s.l.Warn("token for unknown user", "sub", subject)
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func parseBody[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var v T
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	if err := dec.Decode(&v); err != nil {
		writeJSON(w, http.StatusBadRequest, message{Message: err.Error()})
		return nil, false
	}
	return &v, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
