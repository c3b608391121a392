package viewer

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/medievail/skirmish/internal/auth"
)

const oauthStateCookie = "skirmish_oauth_state"

// LoginHandler exchanges a Google sign-in for a spectator JWT, so a browser
// client can obtain a /ws token without the operator minting one by hand.
type LoginHandler struct {
	provider *auth.OAuthProvider
	jwtMgr   *auth.JWTManager
}

// NewLoginHandler creates a LoginHandler. provider must not be nil.
func NewLoginHandler(provider *auth.OAuthProvider, jwtMgr *auth.JWTManager) *LoginHandler {
	return &LoginHandler{provider: provider, jwtMgr: jwtMgr}
}

// ServeLogin handles GET /auth/login: stashes a CSRF state value in a
// short-lived cookie and redirects to the provider's consent screen.
func (h *LoginHandler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	state, err := randomState()
	if err != nil {
		http.Error(w, `{"error":"could not start login"}`, http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/auth",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.provider.LoginURL(state), http.StatusFound)
}

// ServeCallback handles GET /auth/callback: verifies the state cookie,
// exchanges the authorization code for the signed-in user's profile, and
// returns a spectator token pair as JSON.
func (h *LoginHandler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		http.Error(w, `{"error":"invalid oauth state"}`, http.StatusBadRequest)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Path: "/auth", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, `{"error":"missing code parameter"}`, http.StatusBadRequest)
		return
	}

	info, err := h.provider.Exchange(r.Context(), code)
	if err != nil {
		log.Error().Err(err).Str("provider", h.provider.Name()).Msg("oauth exchange failed")
		http.Error(w, `{"error":"oauth exchange failed"}`, http.StatusUnauthorized)
		return
	}

	tokens, err := h.jwtMgr.GenerateTokenPair(info.ID)
	if err != nil {
		http.Error(w, `{"error":"could not mint spectator token"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tokens)
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
