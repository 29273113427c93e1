package config

import (
	"os"
	"strconv"
)

// Config holds environment-driven settings. Source directory, output paths
// and the taxonomy file come from CLI flags instead; everything tunable but
// rarely touched lives here.
type Config struct {
	LogLevel    string
	DatabaseURL string // optional: Postgres export of conversations/messages/issues
	NatsURL     string // optional: run-completed event
	NatsToken   string
	Port        int // report API port for -serve mode

	ResolutionWindow int
	RetentionWindow  int
	MinIssueLen      int

	ResolvedExemplars   int
	UnresolvedExemplars int
	ComplaintExemplars  int
	MinStrategyUses     int
	MinTransitionCases  int
}

func Load() Config {
	return Config{
		LogLevel:    envStr("LOG_LEVEL", "info"),
		DatabaseURL: envStr("DATABASE_URL", ""),
		NatsURL:     envStr("NATS_URL", ""),
		NatsToken:   envStr("NATS_TOKEN", ""),
		Port:        envInt("CHATMINER_PORT", 8760),

		ResolutionWindow: envInt("CHATMINER_RESOLUTION_WINDOW", 5),
		RetentionWindow:  envInt("CHATMINER_RETENTION_WINDOW", 3),
		MinIssueLen:      envInt("CHATMINER_MIN_ISSUE_LEN", 10),

		ResolvedExemplars:   envInt("CHATMINER_RESOLVED_EXEMPLARS", 5),
		UnresolvedExemplars: envInt("CHATMINER_UNRESOLVED_EXEMPLARS", 3),
		ComplaintExemplars:  envInt("CHATMINER_COMPLAINT_EXEMPLARS", 5),
		MinStrategyUses:     envInt("CHATMINER_MIN_STRATEGY_USES", 3),
		MinTransitionCases:  envInt("CHATMINER_MIN_TRANSITION_CASES", 3),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
