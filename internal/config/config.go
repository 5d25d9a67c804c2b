package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	DatabaseDSN     string
	JWTSecret       string
	CORSOrigins     string
	UploadPath      string // Sipariş dosyalarının kaydedileceği klasör yolu
	MaxUploadSizeMB int    // Tek dosya için üst sınır (MB)
}

func Load() *Config {
	// .env varsa yükle (local development için), yoksa sessizce devam et
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=atolye port=5432 sslmode=disable"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CORSOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		UploadPath:      getEnv("UPLOAD_PATH", "./order-files"), // Default: local development için
		MaxUploadSizeMB: getEnvInt("MAX_UPLOAD_SIZE_MB", 32),
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=atolye port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için mutlaka kendi Postgres bağlantı bilgisini tanımla.")
	}
	if cfg.MaxUploadSizeMB <= 0 {
		cfg.MaxUploadSizeMB = 32
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("[WARN] %s sayısal değil, varsayılan (%d) kullanılıyor", key, def)
	}
	return def
}
