package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/config"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/database"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/flash"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/forms"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/handler"
	appmw "github.com/damsolebgdu91/Projet-Fil-Rouge/internal/middleware"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/repository"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/router"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/session"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/throttle"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/utils"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/view"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	// Database + schema bootstrap
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.InitSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("database schema: %v", err)
	}
	cancel()

	// Session store: Redis when reachable, in-memory otherwise. The
	// in-memory fallback loses sessions on restart, which is fine for
	// local development.
	var store session.Store
	if rdb := config.NewRedisClient(); rdb != nil {
		store = session.NewRedisStore(rdb)
		log.Printf("sessions: redis store")
	} else {
		store = session.NewMemoryStore()
		log.Printf("sessions: redis unreachable, using in-memory store")
	}
	sessions := session.NewManager(store, cfg.SessionTTL, cfg.RememberTTL)
	cookies := session.NewCookieCodec(cfg.SecretKey, cfg.RememberTTL)
	flashes := flash.NewManager(cfg.SecretKey)

	users := repository.NewUserRepo(db)
	tasks := repository.NewTaskRepo(db)
	hasher := utils.NewHasher(cfg.BcryptCost)
	loginThrottle := throttle.New(cfg.MaxAttempts, cfg.BlockDuration)

	authHandler := handler.NewAuthHandler(users, sessions, loginThrottle, hasher, cookies, flashes)
	taskHandler := handler.NewTaskHandler(tasks, flashes)
	profileHandler := handler.NewProfileHandler(users, sessions, hasher, cookies, flashes)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Renderer = view.New()
	e.Validator = forms.NewValidator()

	router.RegisterPublic(e, authHandler)
	router.RegisterPrivate(e, authHandler, taskHandler, profileHandler,
		appmw.RequireAuth(cookies, sessions, users, flashes))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
