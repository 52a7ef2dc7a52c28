package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/comp2537/web-portal/internal/admin"
	"github.com/comp2537/web-portal/internal/auth"
	"github.com/comp2537/web-portal/internal/config"
	"github.com/comp2537/web-portal/internal/counter"
	"github.com/comp2537/web-portal/internal/db"
	"github.com/comp2537/web-portal/internal/pages"
	"github.com/comp2537/web-portal/internal/router"
	"github.com/comp2537/web-portal/internal/session"
	"github.com/comp2537/web-portal/internal/users"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	db.Connect(cfg.Database.URL)
	users.Init()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	userStore := users.NewStore(db.DB)
	sessions := session.NewStore(rdb, cfg.SessionTTL())
	authSvc := auth.NewService(userStore, sessions,
		cfg.Auth.LoginAttemptsPerMinute, cfg.Auth.LoginBurst)

	r := router.Setup(router.Deps{
		Sessions: sessions,
		Auth:     &auth.Handler{Svc: authSvc},
		Admin:    &admin.Handler{Users: userStore},
		Pages:    &pages.Handler{Sessions: sessions, Galleries: userStore},
		Counter:  &counter.Handler{Sessions: sessions},
	})

	fmt.Printf("Server listening on port :%s...\n", cfg.Server.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Server.Port, r); err != nil {
		log.Fatal(err)
	}
}
