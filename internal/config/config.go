package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	DBDSN   string
	LogFile string

	// Hosted email collaborator (Resend). Empty key disables real sends.
	ResendAPIKey string
	EmailFrom    string

	// Pricing rules.
	ShipThreshold int64   // free shipping above this subtotal (exclusive)
	ShipFee       int64   // flat fee otherwise
	TaxRate       float64 // flat surcharge on subtotal
}

func Load() Config {
	// Best-effort local env file; real env wins.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "vrukshavalli.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./vrukshavalli.log"
	}
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "Vrukshavalli <orders@vrukshavalli.test>"
	}

	cfg := Config{
		Port:          port,
		DBDSN:         dsn,
		LogFile:       logFile,
		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		EmailFrom:     from,
		ShipThreshold: envInt64("SHIP_THRESHOLD", 1000),
		ShipFee:       envInt64("SHIP_FEE", 100),
		TaxRate:       envFloat("TAX_RATE", 0.18),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s EMAIL=%v", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.ResendAPIKey != "")
	return cfg
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		log.Printf("[config] ignoring bad %s=%q", key, v)
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("[config] ignoring bad %s=%q", key, v)
	}
	return def
}
