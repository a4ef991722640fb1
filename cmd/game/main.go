package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tatianab/last-survivor/internal/config"
	"github.com/tatianab/last-survivor/internal/engine"
	"github.com/tatianab/last-survivor/internal/models"
	"github.com/tatianab/last-survivor/internal/physics"
	"github.com/tatianab/last-survivor/internal/tui"
	"github.com/tatianab/last-survivor/internal/visual"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so diagnostics go to a file.
	logFile, err := os.OpenFile("last-survivor.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := log.New(logFile, "", log.LstdFlags)

	gemini, err := engine.NewGemini(ctx, cfg.GeminiAPIKey, engine.ModelNames{
		Narrative: cfg.NarrativeModel,
		Image:     cfg.ImageModel,
		Critic:    cfg.CriticModel,
	})
	if err != nil {
		fmt.Printf("Error creating Gemini client: %v\n", err)
		os.Exit(1)
	}
	defer gemini.Close()

	lexicon, err := cfg.Lexicon()
	if err != nil {
		fmt.Printf("Error selecting lexicon: %v\n", err)
		os.Exit(1)
	}

	opts := engine.Options{
		Enforcer:      physics.NewEnforcer(physics.NewClassifier(lexicon)),
		TurnTimeout:   cfg.TurnTimeout,
		HistoryWindow: cfg.HistoryWindow,
		Logger:        logger,
	}
	if cfg.Images {
		opts.Renderer = visual.NewPipeline(gemini, visual.NewCritic(gemini, logger), logger)
	}

	var journal *models.Journal
	if cfg.Journal {
		journal, err = models.NewJournal(cfg.JournalDir, time.Now())
		if err != nil {
			fmt.Printf("Error creating journal: %v\n", err)
			os.Exit(1)
		}
	}

	session := engine.NewSession(engine.NewEngine(gemini, opts), journal)
	if err := tui.Run(session); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
