package main

import "os"

type Config struct {
	Env           string
	Port          string
	APIBaseURL    string
	SessionDBFile string
	TemplatesDir  string
	StaticDir     string
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// LoadConfig reads the frontend configuration from the environment. Every
// endpoint family uses the one configured base URL; there are no hard-coded
// hosts anywhere else.
func LoadConfig() Config {
	return Config{
		Env:           env("APP_ENV", "dev"),
		Port:          env("FRONTEND_PORT", "3000"),
		APIBaseURL:    env("HELPDESK_API_URL", "http://localhost:8080"),
		SessionDBFile: env("SESSION_DB_FILE", "sessions.sqlite"),
		TemplatesDir:  env("TEMPLATES_DIR", "frontend_server/templates"),
		StaticDir:     env("STATIC_DIR", "frontend_server/static"),
	}
}
