package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

// Config holds everything tunable from the environment. Reward policy knobs
// (threshold, chance, duplicate handling) live here so the engine itself
// stays free of hardcoded variants.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN"`
	StoragePath  string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	CatalogPath  string `env:"CATALOG_PATH" envDefault:"data/drinks.json"`

	PourThreshold  int     `env:"POUR_THRESHOLD" envDefault:"5"`
	PourChance     float64 `env:"POUR_CHANCE" envDefault:"0.5"`
	DuplicatePours string  `env:"DUPLICATE_POURS" envDefault:"notify"` // "notify" or "skip"

	AIProvider    string        `env:"AI_PROVIDER" envDefault:"pollinations"`
	AIPromptPath  string        `env:"AI_PROMPT_PATH" envDefault:"data/chat.prompt.md"`
	ContextWindow int           `env:"CONTEXT_WINDOW" envDefault:"10"`
	ChatPerMinute int           `env:"CHAT_PER_MINUTE" envDefault:"6"`
	ChatCooldown  time.Duration `env:"CHAT_COOLDOWN" envDefault:"10s"`

	KeepAliveAddr     string `env:"KEEPALIVE_ADDR" envDefault:":8080"`
	InitSlashCommands bool   `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	DeveloperID       string `env:"DEVELOPER_ID"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatal("Failed to parse environment: ", err)
	}

	if cfg.DiscordToken == "" {
		log.Fatal("DISCORD_TOKEN is not set")
	}

	return cfg
}
