package config

import (
	"os"
	"strings"
)

type Config struct {
	Port            string
	AllowedOrigins  []string
	DefaultPageSize int
	MaxPageSize     int
}

func NewConfig() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000"
	}

	return &Config{
		Port:            port,
		AllowedOrigins:  strings.Split(origins, ","),
		DefaultPageSize: 50,
		MaxPageSize:     500,
	}
}
