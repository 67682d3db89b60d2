package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port          string
	Timezone      string
	DBPath        string
	GenAIAPIKey   string
	GenAIModel    string
	BlobBackend   string // fs|s3|memory
	UploadDir     string
	PublicBaseURL string
	S3Bucket      string
	S3Prefix      string
	EnableAuth    bool
	MockAI        bool
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:          get("PORT", "8080"),
		Timezone:      get("TZ", "Asia/Bangkok"),
		DBPath:        get("DB_PATH", "cropdoc.db"),
		GenAIAPIKey:   get("GENAI_API_KEY", ""),
		GenAIModel:    get("GENAI_MODEL", "gemini-2.0-flash"),
		BlobBackend:   get("BLOB_BACKEND", "fs"),
		UploadDir:     get("UPLOAD_DIR", "uploads"),
		PublicBaseURL: get("PUBLIC_BASE_URL", ""),
		S3Bucket:      get("S3_BUCKET", ""),
		S3Prefix:      get("S3_PREFIX", "uploads"),
		EnableAuth:    get("ENABLE_AUTH", "false") == "true",
		MockAI:        get("MOCK_AI", "false") == "true",
	}
	log.Printf("[cfg] port=%s db=%s blob=%s model=%s auth=%v", cfg.Port, cfg.DBPath, cfg.BlobBackend, cfg.GenAIModel, cfg.EnableAuth)
	return cfg
}
