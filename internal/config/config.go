package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/connect4-arena/internal/service/bot"
	flag "github.com/spf13/pflag"
)

type Config struct {
	Port               string
	AuxPortBase        int // 0 means Port+1
	BotStrategy        string
	MatchmakingTimeout time.Duration
	RedisURL           string
	RedisPassword      string
	AllowedOrigins     []string
	StatsInterval      time.Duration
	ConsoleShutdown    bool
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8000")
	matchmakingTimeoutSec := GetEnvAsInt("MATCHMAKING_TIMEOUT_SECONDS", 0)
	statsIntervalSec := GetEnvAsInt("STATS_INTERVAL_SECONDS", 60)

	return &Config{
		Port:               port,
		AuxPortBase:        GetEnvAsInt("AUX_PORT_BASE", 0),
		BotStrategy:        GetEnv("BOT_STRATEGY", bot.StrategyRandom),
		MatchmakingTimeout: time.Duration(matchmakingTimeoutSec) * time.Second,
		RedisURL:           GetEnv("REDIS_URL", ""),
		RedisPassword:      GetEnv("REDIS_PASSWORD", ""),
		AllowedOrigins:     splitList(GetEnv("ALLOWED_ORIGINS", "")),
		StatsInterval:      time.Duration(statsIntervalSec) * time.Second,
	}
}

// BindFlags registers command-line overrides on fs, defaulting to the
// values already loaded from the environment.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVarP(&c.Port, "port", "p", c.Port, "Port to accept participants on")
	fs.IntVar(&c.AuxPortBase, "aux-port-base", c.AuxPortBase, "First aux port handed out (default port+1)")
	fs.StringVar(&c.BotStrategy, "bot", c.BotStrategy, "Computer opponent: random, easy or hard")
	fs.DurationVar(&c.MatchmakingTimeout, "match-timeout", c.MatchmakingTimeout, "Give a waiting player the computer after this long (0 waits forever)")
	fs.StringVar(&c.RedisURL, "redis", c.RedisURL, "Redis address for live-session presence (empty disables)")
	fs.DurationVar(&c.StatsInterval, "stats-interval", c.StatsInterval, "How often to refresh presence and log stats")
	fs.BoolVar(&c.ConsoleShutdown, "console", c.ConsoleShutdown, "Shut down when 'q' is typed on stdin")
}

func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.AuxPortBase < 0 || c.AuxPortBase > 65535 {
		return fmt.Errorf("invalid aux port base %d", c.AuxPortBase)
	}
	if _, err := bot.New(c.BotStrategy); err != nil {
		return err
	}
	if c.MatchmakingTimeout < 0 {
		return fmt.Errorf("negative matchmaking timeout %s", c.MatchmakingTimeout)
	}
	if c.StatsInterval <= 0 {
		return fmt.Errorf("stats interval must be positive, got %s", c.StatsInterval)
	}
	return nil
}

// FirstAuxPort is where aux port numbering starts. Call after Validate.
func (c *Config) FirstAuxPort() int {
	if c.AuxPortBase > 0 {
		return c.AuxPortBase
	}
	port, _ := strconv.Atoi(c.Port)
	return port + 1
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
