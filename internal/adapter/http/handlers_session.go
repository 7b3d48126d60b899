package adapthttp

import (
	"errors"
	"net/http"

	"shopfront/internal/app"
)

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.shop.Session.State())
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := app.ValidateSignIn(body.Email, body.Password); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.shop.Session.SignIn(body.Email, body.Password)
	writeJSON(w, http.StatusAccepted, s.shop.Session.State())
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var form app.SignUpForm
	if err := parseJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := form.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.shop.Session.SignUp(form.Email, form.Password, form.Name)

	st := s.shop.Session.State()
	if st.ErrorMessage != "" && !st.IsLoading {
		writeJSON(w, http.StatusConflict, st)
		return
	}
	writeJSON(w, http.StatusAccepted, st)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.shop.SignOut()
	writeJSON(w, http.StatusOK, s.shop.Session.State())
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in app.ProfileInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	err := s.shop.Session.SaveProfile(in)
	switch {
	case errors.Is(err, app.ErrInvalidProfile):
		writeError(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, app.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusAccepted, s.shop.Session.State())
}
