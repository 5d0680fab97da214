package worker

import (
	"os"
	"time"

	"github.com/josebatista/capicua/config"
)

// WorkerConfig holds configuration for the move worker.
type WorkerConfig struct {
	// How many pending requests may queue before Submit blocks.
	QueueDepth int

	// SubmitTimeout bounds how long Submit waits for the worker to accept
	// a request.
	SubmitTimeout time.Duration

	// Engine configuration for the owned solver.
	EngineConfig *config.Config
}

// DefaultWorkerConfig creates a WorkerConfig with default values.
func DefaultWorkerConfig() *WorkerConfig {
	cfg := config.DefaultConfig()
	return &WorkerConfig{
		QueueDepth:    getEnvInt("CAPICUA_WORKER_QUEUE_DEPTH", 4),
		SubmitTimeout: getEnvDuration("CAPICUA_WORKER_SUBMIT_TIMEOUT", 30*time.Second),
		EngineConfig:  &cfg,
	}
}

// getEnvInt gets an int from an environment variable or returns a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		n := 0
		for _, c := range value {
			if c < '0' || c > '9' {
				return defaultValue
			}
			n = n*10 + int(c-'0')
		}
		return n
	}
	return defaultValue
}

// getEnvDuration gets a duration from an environment variable or returns a
// default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
