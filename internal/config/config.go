package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries everything the process reads from the environment. It is
// parsed once in main and passed down; nothing else touches os.Getenv.
type Config struct {
	Addr    string `env:"ADDR" envDefault:":3000"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3000"`

	DSN string `env:"DSN,required"`

	JWTSecret     string        `env:"JWT_SECRET_KEY,required"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	SessionSecret string        `env:"SESSION_SECRET"`

	AccountID       string `env:"ACCOUNT_ID"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	AccessKeySecret string `env:"ACCESS_KEY_SECRET"`
	BucketName      string `env:"BUCKET_NAME"`
	PublicURL       string `env:"PUBLIC_URL"`

	GoogleKey    string `env:"GOOGLE_KEY"`
	GoogleSecret string `env:"GOOGLE_SECRET"`

	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
	MaxImageWidth  int   `env:"MAX_IMAGE_WIDTH" envDefault:"1024"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = cfg.JWTSecret
	}
	return cfg, nil
}
