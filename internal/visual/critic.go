package visual

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
)

// ErrorType names the way a generated image broke the composition rules.
type ErrorType string

const (
	ErrorThirdPerson   ErrorType = "THIRD_PERSON"
	ErrorHallucination ErrorType = "HALLUCINATION"
	ErrorContext       ErrorType = "CONTEXT_ERROR"
	ErrorNone          ErrorType = "NONE"

	// ErrorGeneration marks an attempt where no image came back at all.
	ErrorGeneration ErrorType = "GENERATION_FAILURE"
)

func (t ErrorType) critique() bool {
	switch t {
	case ErrorThirdPerson, ErrorHallucination, ErrorContext, ErrorNone:
		return true
	}
	return false
}

// ErrCriticUnavailable wraps any failure to get a usable verdict.
var ErrCriticUnavailable = errors.New("critic unavailable")

// Verdict is the critic's judgement of one image.
type Verdict struct {
	Valid          bool      `json:"valid"`
	ErrorType      ErrorType `json:"errorType"`
	FixInstruction string    `json:"fixInstruction"`
}

// VisionOracle answers a text question about an image.
type VisionOracle interface {
	Inspect(ctx context.Context, image []byte, mimeType, question string) (string, error)
}

// Critic checks generated images against the first-person rules.
type Critic struct {
	oracle VisionOracle
	logger *log.Logger
}

// NewCritic returns a Critic backed by oracle. A nil logger uses log.Default().
func NewCritic(oracle VisionOracle, logger *log.Logger) *Critic {
	if logger == nil {
		logger = log.Default()
	}
	return &Critic{oracle: oracle, logger: logger}
}

// Evaluate judges image against the scene prompt it was made from. If the
// oracle fails or answers nonsense the image is accepted.
func (c *Critic) Evaluate(ctx context.Context, image []byte, mimeType, scene string) Verdict {
	v, err := c.evaluate(ctx, image, mimeType, scene)
	if err != nil {
		c.logger.Printf("[CRITIC] offline, bypassing: %v", err)
		return Verdict{Valid: true, ErrorType: ErrorNone}
	}
	return v
}

func (c *Critic) evaluate(ctx context.Context, image []byte, mimeType, scene string) (Verdict, error) {
	raw, err := c.oracle.Inspect(ctx, image, mimeType, analysisPrompt(scene))
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: %v", ErrCriticUnavailable, err)
	}
	return parseVerdict(raw)
}

func parseVerdict(raw string) (Verdict, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")

	var wire struct {
		Valid          *bool     `json:"valid"`
		ErrorType      ErrorType `json:"errorType"`
		FixInstruction string    `json:"fixInstruction"`
	}
	if err := json.Unmarshal([]byte(clean), &wire); err != nil {
		return Verdict{}, fmt.Errorf("%w: parse verdict: %v", ErrCriticUnavailable, err)
	}
	if wire.Valid == nil {
		return Verdict{}, fmt.Errorf("%w: verdict has no valid field", ErrCriticUnavailable)
	}
	if wire.ErrorType == "" {
		wire.ErrorType = ErrorNone
	}
	if !wire.ErrorType.critique() {
		return Verdict{}, fmt.Errorf("%w: unknown error type %q", ErrCriticUnavailable, wire.ErrorType)
	}
	return Verdict{Valid: *wire.Valid, ErrorType: wire.ErrorType, FixInstruction: wire.FixInstruction}, nil
}

func analysisPrompt(scene string) string {
	return fmt.Sprintf(`ROLE: Quality Control AI for a First-Person Survival Game.
INPUT PROMPT: %q

TASK: Check if the image matches the prompt and POV rules.

STRICT FAIL CONDITIONS:
1. [THIRD_PERSON]: Visible back, head, or full body.
2. [HALLUCINATION]: Multiple people, floating items.
3. [CONTEXT_ERROR]: Prompt says "holding item" but hands are empty.

Return JSON: { "valid": boolean, "errorType": "THIRD_PERSON" | "HALLUCINATION" | "CONTEXT_ERROR" | "NONE", "fixInstruction": string }`, scene)
}
