package main

import (
	"database/sql"
	"net/http"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "aurora_hotel/internal/adapters/http_server"
	"aurora_hotel/internal/adapters/media"
	"aurora_hotel/internal/adapters/observability"
	redisad "aurora_hotel/internal/adapters/redis"
	"aurora_hotel/internal/app"
	"aurora_hotel/internal/shared"
	mysqlrepo "aurora_hotel/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, os.Stdout)

	reg := observability.InitRegistry()
	observability.Serve(reg)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	mediaStore, err := media.New(cfg.Media)
	if err != nil {
		log.Fatal().Err(err).Msg("media store init failed")
	}
	tokens := app.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	handlers := &server.Handlers{
		Auth:       app.NewAuthService(repo.Users, tokens),
		Users:      app.NewUserService(repo.Users),
		Rooms:      app.NewRoomService(repo.Rooms, mediaStore, cache, cfg.CacheTTL),
		Bookings:   app.NewBookingService(repo.Bookings, repo.Rooms, repo.Users, cache, cfg.CacheTTL),
		Tokens:     tokens,
		LoginRPS:   cfg.LoginRPS,
		LoginBurst: cfg.LoginBurst,
	}

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	if lc := cfg.Media.Local; lc != nil {
		prefix := strings.TrimSuffix(lc.URLPrefix, "/") + "/"
		srv.Mount(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(lc.Dir))))
		log.Info().Str("dir", lc.Dir).Msg("serving room images from local disk")
	} else {
		log.Info().Msg("room images stored in object storage")
	}
	srv.MountHandlers(handlers)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
