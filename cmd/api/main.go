package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	"github.com/radionovroman/tic-tac-toe-backend/internal/auth"
	"github.com/radionovroman/tic-tac-toe-backend/internal/blob"
	"github.com/radionovroman/tic-tac-toe-backend/internal/config"
	"github.com/radionovroman/tic-tac-toe-backend/internal/game"
	"github.com/radionovroman/tic-tac-toe-backend/internal/handlers"
	"github.com/radionovroman/tic-tac-toe-backend/internal/imaging"
	"github.com/radionovroman/tic-tac-toe-backend/internal/storage"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	store := storage.NewDB(db)
	if err := store.Migrate(); err != nil {
		logger.Fatal("failed to migrate models", zap.Error(err))
	}

	blobs, err := blob.NewS3Store(context.Background(), blob.S3Options{
		AccountID:       cfg.AccountID,
		AccessKeyID:     cfg.AccessKeyID,
		AccessKeySecret: cfg.AccessKeySecret,
		Bucket:          cfg.BucketName,
		PublicURL:       cfg.PublicURL,
	})
	if err != nil {
		logger.Fatal("failed to build blob store", zap.Error(err))
	}

	// OAuth session store holds only the in-flight gothic state; logins end
	// up as bearer tokens either way.
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400)
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	gothic.Store = sessionStore
	goth.UseProviders(
		google.New(cfg.GoogleKey, cfg.GoogleSecret, cfg.BaseURL+"/auth/google/callback"),
	)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	processor := &imaging.VipsProcessor{MaxWidth: cfg.MaxImageWidth}

	customization := game.NewCustomization(store, blobs, processor, logger)
	sharing := game.NewSharing(store, blobs, logger)
	games := game.NewGames(store, blobs, sharing)

	router := handlers.NewRouter(handlers.RouterConfig{
		Users:        handlers.NewUserHandler(store, tokens, logger),
		Images:       handlers.NewImagesHandler(customization, blobs, cfg.MaxUploadBytes, logger),
		Share:        handlers.NewShareHandler(sharing, cfg.BaseURL, logger),
		GameData:     handlers.NewGameDataHandler(games, logger),
		Tokens:       tokens,
		APIRateLimit: 20,
	})

	logger.Info("starting API server", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
