package viewer

import (
	"net/http"

	"github.com/medievail/skirmish/internal/auth"
)

// NewMux builds the viewer's HTTP surface: GET /ws for the spectator feed,
// GET /healthz for liveness. Battle launches themselves are driven by the
// CLI, not this server — the mux only serves spectators. oauthProvider may
// be nil, in which case /auth/login and /auth/callback are not registered
// and spectator tokens must be minted out of band. poller may be nil, in
// which case only in-process battles (via BroadcastSink) reach spectators.
func NewMux(hub *Hub, jwtMgr *auth.JWTManager, oauthProvider *auth.OAuthProvider, poller *RedisPoller) *http.ServeMux {
	mux := http.NewServeMux()
	h := NewHandler(hub, jwtMgr, poller)

	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if oauthProvider != nil {
		login := NewLoginHandler(oauthProvider, jwtMgr)
		mux.HandleFunc("/auth/login", login.ServeLogin)
		mux.HandleFunc("/auth/callback", login.ServeCallback)
	}

	return mux
}
