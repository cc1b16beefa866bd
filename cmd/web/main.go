package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skillfolio/skillfolio-web/config"
	httpapi "github.com/skillfolio/skillfolio-web/internal/api/http"
	"github.com/skillfolio/skillfolio-web/internal/bootstrap"
	"github.com/skillfolio/skillfolio-web/internal/logging"
	"github.com/skillfolio/skillfolio-web/internal/session"
	"github.com/skillfolio/skillfolio-web/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)
	logging.SetLevel(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cookieOpts := session.CookieOptions{TTL: cfg.Session.TTL, Secure: cfg.Session.CookieSecure}

	var (
		sessions session.Store
		pinger   httpapi.Pinger
	)
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb, cookieOpts)
		pinger = redisPinger(rdb)
	default:
		sessions = session.NewCookieStore(cookieOpts)
	}

	router, err := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:        cfg.App.ServiceName,
		Version:            cfg.App.Version,
		API:                upstream.NewClient(cfg.API.BaseURL, cfg.API.Timeout),
		Sessions:           sessions,
		SessionsPinger:     pinger,
		SecureCookies:      cfg.Session.CookieSecure,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("%s %s listening on :%s (api=%s sessions=%s)",
			cfg.App.ServiceName, cfg.App.Version, cfg.Server.Port, cfg.API.BaseURL, cfg.Session.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func redisPinger(rdb *redis.Client) httpapi.Pinger {
	return httpapi.PingFunc(func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
}
