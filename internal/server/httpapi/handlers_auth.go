package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := readJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.users.Register(r.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "user_id", sess.User.ID)
	writeJSON(w, http.StatusOK, sessionResponse{User: toUserResponse(sess.User), Token: sess.Token})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := readJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.users.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{User: toUserResponse(sess.User), Token: sess.Token})
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Me(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, meResponse{User: toUserResponse(user)})
}

func (s *HTTPServer) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in profileRequest
	if err := readJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), userIDFromContext(r.Context()), models.ProfilePatch{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{User: toUserResponse(user)})
}
