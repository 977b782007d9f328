package main

import (
	"flag"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	endpoint        string
	dsn             string
	logLevel        string
	env             string
	rateLimitMax    int
	rateLimitWindow time.Duration
	sweepInterval   time.Duration
}

func NewConfig() Config {
	var (
		endpoint string
		dsn      string
		logLevel string
		env      string
	)

	flag.StringVar(&endpoint, "a", "localhost:8090", "address and port to run server")
	flag.StringVar(&dsn, "d", "", "data source name for database connection")
	flag.Parse()

	if address := os.Getenv("RUN_ADDRESS"); address != "" {
		endpoint = address
	}

	if d := os.Getenv("DATABASE_URI"); d != "" {
		dsn = d
	}

	if l := os.Getenv("LOG_LEVEL"); l != "" {
		logLevel = l
	} else {
		logLevel = "error"
	}

	if e := os.Getenv("ENV"); e != "" {
		env = e
	} else {
		env = "production"
	}

	return Config{
		endpoint:        endpoint,
		dsn:             dsn,
		logLevel:        logLevel,
		env:             env,
		rateLimitMax:    intFromEnv("RATE_LIMIT_MAX", 1),
		rateLimitWindow: durationFromEnv("RATE_LIMIT_WINDOW", 5*time.Second),
		sweepInterval:   durationFromEnv("RATE_LIMIT_SWEEP", time.Minute),
	}
}

func intFromEnv(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("WARNING: %s is not an integer, using default %d\n", name, fallback)
		return fallback
	}

	return value
}

func durationFromEnv(name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("WARNING: %s is not a duration, using default %s\n", name, fallback)
		return fallback
	}

	return value
}
