package engine

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/tatianab/last-survivor/internal/models"
)

var (
	// ErrTurnInFlight is returned when a turn is requested while another runs.
	ErrTurnInFlight = errors.New("a turn is already in progress")
	// ErrGameOver is returned for turns requested after the player died.
	ErrGameOver = errors.New("game over")
)

// Session owns the current state of one game and serializes its turns.
type Session struct {
	engine  *Engine
	journal *models.Journal
	logger  *log.Logger

	inFlight atomic.Bool

	mu      sync.Mutex
	state   models.GameState
	history []string
	turn    int
}

// NewSession starts a game from the initial snapshot. journal may be nil.
func NewSession(eng *Engine, journal *models.Journal) *Session {
	return &Session{
		engine:  eng,
		journal: journal,
		logger:  eng.logger,
		state:   models.InitialState(),
	}
}

// State returns a copy of the current snapshot.
func (s *Session) State() models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// History returns a copy of the transcript lines sent to the narrator.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// Start plays the scripted opening action.
func (s *Session) Start(ctx context.Context) (models.TurnResult, error) {
	return s.play(ctx, models.IntroAction, false)
}

// Play resolves one player action.
func (s *Session) Play(ctx context.Context, action string) (models.TurnResult, error) {
	return s.play(ctx, action, true)
}

func (s *Session) play(ctx context.Context, action string, record bool) (models.TurnResult, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return models.TurnResult{}, ErrTurnInFlight
	}
	defer s.inFlight.Store(false)

	s.mu.Lock()
	if s.state.IsGameOver {
		s.mu.Unlock()
		return models.TurnResult{}, ErrGameOver
	}
	previous := s.state.Clone()
	history := append([]string(nil), s.history...)
	s.turn++
	turn := s.turn
	s.mu.Unlock()

	result := s.engine.ResolveTurn(ctx, history, previous, action)
	s.writeJournal(turn, action, &result)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = result.State.Clone()
	if record {
		s.history = append(s.history, "USER: "+action)
	}
	s.history = append(s.history, "AI: "+result.Story)
	return result, nil
}

func (s *Session) writeJournal(turn int, action string, result *models.TurnResult) {
	if s.journal == nil {
		return
	}
	if result.HasImage() {
		ref, err := s.journal.SaveImage(turn, result.Image, result.ImageMIMEType)
		if err != nil {
			s.logger.Printf("[JOURNAL] save image: %v", err)
		} else {
			result.ImageRef = ref
		}
	}
	if err := s.journal.SaveTurn(turn, action, *result); err != nil {
		s.logger.Printf("[JOURNAL] save turn: %v", err)
	}
}
