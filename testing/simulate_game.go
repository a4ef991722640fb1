package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/last-survivor/internal/config"
	"github.com/tatianab/last-survivor/internal/engine"
	"github.com/tatianab/last-survivor/internal/models"
	"github.com/tatianab/last-survivor/internal/physics"
	"google.golang.org/api/option"
)

const maxTurns = 10

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The narrator. Images are skipped to keep the simulation cheap.
	gemini, err := engine.NewGemini(ctx, cfg.GeminiAPIKey, engine.ModelNames{
		Narrative: cfg.NarrativeModel,
		Image:     cfg.ImageModel,
		Critic:    cfg.CriticModel,
	})
	if err != nil {
		log.Fatalf("Failed to create narrator: %v", err)
	}
	defer gemini.Close()

	lexicon, err := cfg.Lexicon()
	if err != nil {
		log.Fatalf("Failed to select lexicon: %v", err)
	}

	session := engine.NewSession(engine.NewEngine(gemini, engine.Options{
		Enforcer:      physics.NewEnforcer(physics.NewClassifier(lexicon)),
		TurnTimeout:   cfg.TurnTimeout,
		HistoryWindow: cfg.HistoryWindow,
	}), nil)

	// The player LLM
	playerClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer playerClient.Close()
	playerModel := playerClient.GenerativeModel("gemini-2.5-flash")

	fmt.Println("--- Intro ---")
	result, err := session.Start(ctx)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	printTurn(result)

	for turn := 1; turn <= maxTurns; turn++ {
		fmt.Printf("--- Turn %d ---\n", turn)

		action := getPlayerAction(ctx, playerModel, session)
		fmt.Printf("Player Action: %s\n", action)

		result, err := session.Play(ctx, action)
		if err != nil {
			fmt.Printf("Error processing turn: %v\n", err)
			break
		}
		printTurn(result)

		if result.State.IsGameOver {
			fmt.Println("Game Ended: Player Died!")
			break
		}
	}
}

func printTurn(r models.TurnResult) {
	fmt.Printf("Story: %s\n", r.Story)
	if r.Degraded {
		fmt.Println("(narrator unavailable, state unchanged)")
	}
	s := r.State
	fmt.Printf("Time=%s Temp=%.0f HP=%.0f O2=%.0f Food=%.0f Water=%.0f Sound=%s\n", s.Time, s.Temperature, s.Health, s.Oxygen, s.Hunger, s.Thirst, r.SoundCue)
	fmt.Printf("Location: %s Inventory: %v\n\n", s.Location, s.Inventory)
}

func getPlayerAction(ctx context.Context, model *genai.GenerativeModel, session *engine.Session) string {
	state := session.State()
	prompt := fmt.Sprintf(`Ты играешь в текстовую игру на выживание. Красный гигант восходит в 05:00, после этого всё горит.
Время: %s
Температура: %.0f
Здоровье: %.0f, Кислород: %.0f, Еда: %.0f, Вода: %.0f
Локация: %s
Инвентарь: %v

История:
%s

Что ты делаешь дальше? Ответь ОДНОЙ короткой фразой от первого лица на русском, без комментариев.`,
		state.Time, state.Temperature, state.Health, state.Oxygen, state.Hunger, state.Thirst,
		state.Location, state.Inventory,
		strings.Join(session.History(), "\n"),
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "осматриваюсь"
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "осматриваюсь"
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
}
