package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/tatianab/last-survivor/internal/physics"
)

// Config holds the application configuration.
type Config struct {
	GeminiAPIKey   string        `env:"GEMINI_API_KEY,required,notEmpty"`
	NarrativeModel string        `env:"LAST_SURVIVOR_NARRATIVE_MODEL" envDefault:"gemini-3-pro-preview"`
	ImageModel     string        `env:"LAST_SURVIVOR_IMAGE_MODEL" envDefault:"gemini-2.5-flash-image"`
	CriticModel    string        `env:"LAST_SURVIVOR_CRITIC_MODEL" envDefault:"gemini-2.5-flash"`
	TurnTimeout    time.Duration `env:"LAST_SURVIVOR_TURN_TIMEOUT" envDefault:"90s"`
	HistoryWindow  int           `env:"LAST_SURVIVOR_HISTORY_WINDOW" envDefault:"10"`
	Images         bool          `env:"LAST_SURVIVOR_IMAGES" envDefault:"true"`
	Journal        bool          `env:"LAST_SURVIVOR_JOURNAL" envDefault:"true"`
	JournalDir     string        `env:"LAST_SURVIVOR_JOURNAL_DIR" envDefault:".journal"`
	// Locale selects the keyword lexicon used to read player actions.
	Locale string `env:"LAST_SURVIVOR_LOCALE" envDefault:"ru"`
}

// Lexicon returns the action lexicon for the configured locale.
func (c *Config) Lexicon() (physics.Lexicon, error) {
	return physics.LexiconFor(c.Locale)
}

// LoadConfig loads the configuration from the environment, after applying
// any .env file in the working directory.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return parse()
}

func parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.Lexicon(); err != nil {
		return nil, fmt.Errorf("parse env: LAST_SURVIVOR_LOCALE: %w", err)
	}
	return &cfg, nil
}
