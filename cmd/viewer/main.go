// Command viewer starts the spectator HTTP+WebSocket server. A battle run
// with `battle run --spectate` publishes its ticks to Redis under a battle
// ID; this process polls that battle ID once a spectator subscribes to it
// and rebroadcasts over WebSocket. A battle sharing this process instead
// (via internal/viewer.BroadcastSink) needs no Redis at all.
package main

import (
	"flag"
	"net/http"
	"time"

	"github.com/medievail/skirmish/internal/auth"
	"github.com/medievail/skirmish/internal/config"
	"github.com/medievail/skirmish/internal/logger"
	"github.com/medievail/skirmish/internal/persist/redis"
	"github.com/medievail/skirmish/internal/viewer"
)

func main() {
	logger.Init()
	log := logger.Get()
	cfg := config.Load()

	var (
		port         string
		jwtSecret    string
		redisURL     string
		pollInterval time.Duration
	)
	flag.StringVar(&port, "port", cfg.ViewerPort, "HTTP listen port")
	flag.StringVar(&jwtSecret, "jwt-secret", cfg.JWTSecret, "JWT signing secret for spectator tokens")
	flag.StringVar(&redisURL, "redis-url", cfg.RedisURL, "Redis URL to poll for ticks published by battle run --spectate")
	flag.DurationVar(&pollInterval, "poll-interval", 200*time.Millisecond, "how often to poll Redis per subscribed battle")
	flag.Parse()

	jwtMgr := auth.NewJWTManager(jwtSecret)
	hub := viewer.NewHub()

	var poller *viewer.RedisPoller
	redisClient, err := redis.NewClient(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, spectators will only see battles sharing this process")
	} else {
		poller = viewer.NewRedisPoller(hub, redisClient, pollInterval)
		log.Info().Str("redisUrl", redisURL).Dur("pollInterval", pollInterval).Msg("polling redis for live battle ticks")
	}

	var oauthProvider *auth.OAuthProvider
	if cfg.GoogleOAuthConfigured() {
		oauthProvider = auth.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
		log.Info().Msg("spectator Google sign-in enabled")
	}
	mux := viewer.NewMux(hub, jwtMgr, oauthProvider, poller)

	addr := ":" + port
	log.Info().Str("addr", addr).Msg("spectator viewer listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal().Err(err).Msg("viewer server failed")
	}
}
