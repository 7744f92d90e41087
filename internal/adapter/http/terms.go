package http

import (
	"net/http"
)

// SessionCookie carries the session ID whose terms flag gates the resolver routes.
const SessionCookie = "erovista_session"

type termsResponse struct {
	Accepted bool `json:"accepted"`
}

func sessionID(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *Server) handleTermsStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, termsResponse{Accepted: s.sessions.Accepted(sessionID(r))})
}

func (s *Server) handleTermsAccept(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Accept(sessionID(r))
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Info("terms accepted", "session_id", sess.ID)
	writeJSON(w, http.StatusOK, termsResponse{Accepted: true})
}

// gate rejects requests from sessions that have not accepted the terms.
func (s *Server) gate(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.requireTerms && !s.sessions.Accepted(sessionID(r)) {
			writeError(w, http.StatusForbidden, "terms not accepted")
			return
		}
		next(w, r)
	})
}
