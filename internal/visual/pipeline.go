// Package visual turns a scene prompt into a first-person image that has
// passed the critic, retrying with corrections a bounded number of times.
package visual

import (
	"context"
	"errors"
	"log"
)

const (
	// MaxAttempts bounds image generation calls per Render.
	MaxAttempts = 3
	// AspectRatio is requested for every scene.
	AspectRatio = "16:9"
	// DefaultMIMEType labels image payloads that arrive without a type.
	DefaultMIMEType = "image/jpeg"
)

// ErrImageGeneration means an attempt produced no image payload.
var ErrImageGeneration = errors.New("image generation failed")

// ImageGenerator produces image bytes and their MIME type for a prompt. An
// empty result counts as a failed attempt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt, aspectRatio string) (data []byte, mimeType string, err error)
}

// Judge decides whether an image is acceptable. *Critic implements it.
type Judge interface {
	Evaluate(ctx context.Context, image []byte, mimeType, scene string) Verdict
}

// Image is an accepted scene image.
type Image struct {
	Data     []byte
	MIMEType string
	Attempts int
}

// Pipeline generates and validates scene images.
type Pipeline struct {
	generator ImageGenerator
	judge     Judge
	logger    *log.Logger
}

// NewPipeline wires a generator and a judge. A nil logger uses log.Default().
func NewPipeline(generator ImageGenerator, judge Judge, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{generator: generator, judge: judge, logger: logger}
}

// Render returns an accepted image for scene, or nil once MaxAttempts have
// been used without one. Running out of attempts is not an error.
func (p *Pipeline) Render(ctx context.Context, scene string) *Image {
	var correction *Correction
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			p.logger.Printf("[GEN] aborted before attempt %d: %v", attempt, ctx.Err())
			return nil
		}

		p.logger.Printf("[GEN] Attempt %d | Prompt: %s...", attempt, preview(scene))
		data, mimeType, err := p.generator.GenerateImage(ctx, EngineerPrompt(scene, correction), AspectRatio)
		if err == nil && len(data) == 0 {
			err = ErrImageGeneration
		}
		if err != nil {
			p.logger.Printf("[GEN] attempt %d failed: %v", attempt, err)
			c := crashCorrection
			correction = &c
			continue
		}

		if mimeType == "" {
			mimeType = DefaultMIMEType
		}
		verdict := p.judge.Evaluate(ctx, data, mimeType, scene)
		if verdict.Valid {
			return &Image{Data: data, MIMEType: mimeType, Attempts: attempt}
		}

		p.logger.Printf("[REJECT] Reason: %s | Fix: %s", verdict.ErrorType, verdict.FixInstruction)
		instruction := verdict.FixInstruction
		if instruction == "" {
			instruction = "Force POV"
		}
		correction = &Correction{ErrorType: verdict.ErrorType, Instruction: instruction}
	}
	p.logger.Printf("[GEN] max retries exhausted")
	return nil
}

func preview(s string) string {
	r := []rune(s)
	if len(r) > 50 {
		r = r[:50]
	}
	return string(r)
}
