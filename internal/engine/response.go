package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tatianab/last-survivor/internal/models"
)

// proposal is a narrator response that passed schema validation.
type proposal struct {
	Story       string
	ImagePrompt string
	SoundCue    models.SoundCue
	State       models.GameState
}

// Every field is a pointer or slice so a missing key can be told apart
// from a zero value.
type turnWire struct {
	Story       *string    `json:"story"`
	ImagePrompt *string    `json:"imagePrompt"`
	SoundCue    *string    `json:"soundCue"`
	GameState   *stateWire `json:"gameState"`
}

type stateWire struct {
	Health        *float64 `json:"health"`
	Oxygen        *float64 `json:"oxygen"`
	Hunger        *float64 `json:"hunger"`
	Thirst        *float64 `json:"thirst"`
	Temperature   *float64 `json:"temperature"`
	Time          *string  `json:"time"`
	Location      *string  `json:"location"`
	Inventory     []string `json:"inventory"`
	KnowledgeBase []string `json:"knowledgeBase"`
	VisualContext *string  `json:"visualContext"`
	IsGameOver    *bool    `json:"isGameOver"`
	GamePhase     *string  `json:"gamePhase"`
}

func parseProposal(raw string) (proposal, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")

	var wire turnWire
	if err := json.Unmarshal([]byte(clean), &wire); err != nil {
		return proposal{}, fmt.Errorf("%w: parse turn JSON: %v", ErrSchemaViolation, err)
	}

	var missing []string
	need := func(ok bool, name string) {
		if !ok {
			missing = append(missing, name)
		}
	}
	need(wire.Story != nil, "story")
	need(wire.ImagePrompt != nil, "imagePrompt")
	need(wire.SoundCue != nil, "soundCue")
	need(wire.GameState != nil, "gameState")
	if s := wire.GameState; s != nil {
		need(s.Health != nil, "gameState.health")
		need(s.Oxygen != nil, "gameState.oxygen")
		need(s.Hunger != nil, "gameState.hunger")
		need(s.Thirst != nil, "gameState.thirst")
		need(s.Temperature != nil, "gameState.temperature")
		need(s.Time != nil, "gameState.time")
		need(s.Location != nil, "gameState.location")
		need(s.Inventory != nil, "gameState.inventory")
		need(s.KnowledgeBase != nil, "gameState.knowledgeBase")
		need(s.VisualContext != nil, "gameState.visualContext")
		need(s.IsGameOver != nil, "gameState.isGameOver")
		need(s.GamePhase != nil, "gameState.gamePhase")
	}
	if len(missing) > 0 {
		return proposal{}, fmt.Errorf("%w: missing %s", ErrSchemaViolation, strings.Join(missing, ", "))
	}

	cue := models.SoundCue(*wire.SoundCue)
	if !cue.Valid() {
		return proposal{}, fmt.Errorf("%w: unknown sound cue %q", ErrSchemaViolation, cue)
	}
	phase := models.GamePhase(*wire.GameState.GamePhase)
	if !phase.Valid() {
		return proposal{}, fmt.Errorf("%w: unknown game phase %q", ErrSchemaViolation, phase)
	}

	s := wire.GameState
	return proposal{
		Story:       *wire.Story,
		ImagePrompt: *wire.ImagePrompt,
		SoundCue:    cue,
		State: models.GameState{
			Health:        *s.Health,
			Oxygen:        *s.Oxygen,
			Hunger:        *s.Hunger,
			Thirst:        *s.Thirst,
			Temperature:   *s.Temperature,
			Time:          *s.Time,
			Location:      *s.Location,
			Inventory:     s.Inventory,
			KnowledgeBase: s.KnowledgeBase,
			VisualContext: *s.VisualContext,
			IsGameOver:    *s.IsGameOver,
			GamePhase:     phase,
		},
	}, nil
}
