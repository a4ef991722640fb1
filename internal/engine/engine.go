package engine

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/tatianab/last-survivor/internal/models"
	"github.com/tatianab/last-survivor/internal/physics"
	"github.com/tatianab/last-survivor/internal/visual"
)

var (
	// ErrOracleUnavailable covers network failures, timeouts and empty narrator responses.
	ErrOracleUnavailable = errors.New("narrative oracle unavailable")
	// ErrSchemaViolation means the narrator answered with a missing or malformed field.
	ErrSchemaViolation = errors.New("narrative schema violation")
)

const (
	degradedStory       = "СИСТЕМА: Температурный сбой сенсоров... (Ошибка ИИ)"
	degradedImagePrompt = "Red static noise, heat distortion, glitch screen"

	defaultTurnTimeout   = 90 * time.Second
	defaultHistoryWindow = 10
)

// Narrator produces the raw JSON proposal for a turn prompt.
type Narrator interface {
	Narrate(ctx context.Context, prompt string) (string, error)
}

// Renderer turns a scene prompt into an accepted image, or nil.
type Renderer interface {
	Render(ctx context.Context, scene string) *visual.Image
}

// Options configures an Engine. Zero values pick defaults; a nil Renderer
// makes every turn text-only.
type Options struct {
	Renderer      Renderer
	Enforcer      *physics.Enforcer
	TurnTimeout   time.Duration
	HistoryWindow int
	Logger        *log.Logger
}

// Engine resolves turns: narrator, then physics, then imagery.
type Engine struct {
	narrator      Narrator
	renderer      Renderer
	enforcer      *physics.Enforcer
	turnTimeout   time.Duration
	historyWindow int
	logger        *log.Logger
}

func NewEngine(narrator Narrator, opts Options) *Engine {
	e := &Engine{
		narrator:      narrator,
		renderer:      opts.Renderer,
		enforcer:      opts.Enforcer,
		turnTimeout:   opts.TurnTimeout,
		historyWindow: opts.HistoryWindow,
		logger:        opts.Logger,
	}
	if e.enforcer == nil {
		e.enforcer = physics.NewEnforcer(physics.NewClassifier(physics.RussianLexicon()))
	}
	if e.turnTimeout <= 0 {
		e.turnTimeout = defaultTurnTimeout
	}
	if e.historyWindow <= 0 {
		e.historyWindow = defaultHistoryWindow
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	return e
}

// ResolveTurn plays action against previous and returns the turn's result.
// It never fails: when the narrator cannot produce a valid proposal the
// result is degraded and carries previous unchanged.
func (e *Engine) ResolveTurn(ctx context.Context, history []string, previous models.GameState, action string) models.TurnResult {
	p, err := e.propose(ctx, history, previous, action)
	if err != nil {
		e.logger.Printf("[TURN] narrator failed, state kept: %v", err)
		return degradedResult(previous)
	}

	if _, err := physics.ParseClock(p.State.Time); err != nil {
		e.logger.Printf("[TURN] %v, keeping previous clock %s", err, previous.Time)
	}
	state := e.enforcer.Correct(previous, action, p.State)
	state.KnowledgeBase = mergeKnowledge(previous.KnowledgeBase, state.KnowledgeBase)

	result := models.TurnResult{
		Story:       p.Story,
		ImagePrompt: p.ImagePrompt,
		SoundCue:    p.SoundCue,
		State:       state,
	}
	if e.renderer != nil && p.ImagePrompt != "" {
		if img := e.renderer.Render(ctx, p.ImagePrompt); img != nil {
			result.Image = img.Data
			result.ImageMIMEType = img.MIMEType
			result.ImageRef = "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
		}
	}
	return result
}

func (e *Engine) propose(ctx context.Context, history []string, previous models.GameState, action string) (proposal, error) {
	if len(history) > e.historyWindow {
		history = history[len(history)-e.historyWindow:]
	}
	prompt, err := turnPrompt(previous, history, action)
	if err != nil {
		return proposal{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.turnTimeout)
	defer cancel()

	raw, err := e.narrator.Narrate(ctx, prompt)
	if err != nil {
		return proposal{}, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	return parseProposal(raw)
}

func degradedResult(previous models.GameState) models.TurnResult {
	return models.TurnResult{
		Story:       degradedStory,
		ImagePrompt: degradedImagePrompt,
		SoundCue:    models.SoundAlarm,
		State:       previous.Clone(),
		Degraded:    true,
	}
}

// mergeKnowledge keeps every previous fact and appends new ones in order.
func mergeKnowledge(previous, proposed []string) []string {
	out := append(make([]string, 0, len(previous)+len(proposed)), previous...)
	seen := make(map[string]bool, len(previous))
	for _, fact := range previous {
		seen[fact] = true
	}
	for _, fact := range proposed {
		if !seen[fact] {
			seen[fact] = true
			out = append(out, fact)
		}
	}
	return out
}
