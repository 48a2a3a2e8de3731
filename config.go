package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	Port      string
	LogLevel  zerolog.Level
	LogFile   string
	RateLimit int
	TickRate  int
}

// MaxTickRate keeps the tick interval at a millisecond or more.
const MaxTickRate = 1000

// TickInterval is the time between two authoritative updates of a match.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

func MustLoadConfig() *Config {
	godotenv.Load()
	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		panic(fmt.Sprintf("LOG_LEVEL is invalid: %v", err))
	}
	config := &Config{
		Port:      getEnv("PORT", "4000"),
		LogLevel:  level,
		LogFile:   getEnv("LOG_FILE", ""),
		RateLimit: mustPositiveInt("RATE_LIMIT", 120),
		TickRate:  mustPositiveInt("TICK_RATE", 30),
	}
	if config.TickRate > MaxTickRate {
		panic(fmt.Sprintf("TICK_RATE must be at most %d, got %d", MaxTickRate, config.TickRate))
	}
	return config
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustPositiveInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		panic(fmt.Sprintf("%s must be a positive integer, got %q", key, raw))
	}
	return value
}
