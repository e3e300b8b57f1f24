package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/server/httpapi"
)

const (
	msgEmailTaken         = "Email already registered"
	msgInvalidCredentials = "Invalid email or password"
	msgRegistrationFailed = "Registration failed"
	msgLoginFailed        = "Login failed"
)

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) error {
	var req httpapi.RegisterRequest
	if err := s.bind(r, &req); err != nil {
		return err
	}

	res, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return httpError(http.StatusConflict, msgEmailTaken)
		}
		return internalError(msgRegistrationFailed, err)
	}

	s.logger.Info(r.Context(), "Registered", "user_id", res.User.ID)

	s.setSessionCookie(w, res.Token)
	writeJSON(w, http.StatusCreated, httpapi.NewAuthResponse(res.User))
	return nil
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) error {
	var req httpapi.LoginRequest
	if err := s.bind(r, &req); err != nil {
		return err
	}

	res, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return httpError(http.StatusUnauthorized, msgInvalidCredentials)
		}
		return internalError(msgLoginFailed, err)
	}

	s.setSessionCookie(w, res.Token)
	writeJSON(w, http.StatusOK, httpapi.NewAuthResponse(res.User))
	return nil
}

// logout always succeeds from the client's point of view.
func (s *HTTPServer) logout(w http.ResponseWriter, r *http.Request) error {
	if token := sessionToken(r); token != "" {
		if _, err := s.auth.Logout(r.Context(), token); err != nil {
			s.logger.Error(r.Context(), "Failed to delete session on logout", "error", err)
		}
	}

	s.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *HTTPServer) me(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, httpapi.NewAuthResponse(currentUser(r.Context())))
	return nil
}
