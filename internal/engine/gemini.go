package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/last-survivor/internal/models"
	"github.com/tatianab/last-survivor/internal/visual"
	"google.golang.org/api/option"
)

var (
	_ Narrator              = (*Gemini)(nil)
	_ visual.ImageGenerator = (*Gemini)(nil)
	_ visual.VisionOracle   = (*Gemini)(nil)
)

// ModelNames selects the Gemini model behind each oracle.
type ModelNames struct {
	Narrative string
	Image     string
	Critic    string
}

// Gemini implements Narrator, visual.ImageGenerator and visual.VisionOracle
// on one genai client.
type Gemini struct {
	client *genai.Client
	brain  *genai.GenerativeModel
	artist *genai.GenerativeModel
	critic *genai.GenerativeModel
}

func NewGemini(ctx context.Context, apiKey string, names ModelNames) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	brain := client.GenerativeModel(names.Narrative)
	brain.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	brain.ResponseMIMEType = "application/json"
	brain.ResponseSchema = turnSchema()

	critic := client.GenerativeModel(names.Critic)
	critic.ResponseMIMEType = "application/json"

	return &Gemini{
		client: client,
		brain:  brain,
		artist: client.GenerativeModel(names.Image),
		critic: critic,
	}, nil
}

func (g *Gemini) Close() {
	g.client.Close()
}

// Narrate asks the narrative model for a turn proposal.
func (g *Gemini) Narrate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.brain.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

// GenerateImage returns the last image part of the artist's answer and its
// MIME type. No image is returned as an empty slice, not an error.
func (g *Gemini) GenerateImage(ctx context.Context, prompt, aspectRatio string) ([]byte, string, error) {
	resp, err := g.artist.GenerateContent(ctx, genai.Text(prompt+"\nAspect ratio: "+aspectRatio))
	if err != nil {
		return nil, "", err
	}
	blob := lastBlob(resp)
	return blob.Data, blob.MIMEType, nil
}

func lastBlob(resp *genai.GenerateContentResponse) genai.Blob {
	var last genai.Blob
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				last = blob
			}
		}
		break
	}
	return last
}

// Inspect sends an image and a question to the critic model.
func (g *Gemini) Inspect(ctx context.Context, image []byte, mimeType, question string) (string, error) {
	resp, err := g.critic.GenerateContent(ctx, genai.Blob{MIMEType: mimeType, Data: image}, genai.Text(question))
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return b.String(), nil
}

func turnSchema() *genai.Schema {
	str := func() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
	num := func() *genai.Schema { return &genai.Schema{Type: genai.TypeNumber} }
	list := func() *genai.Schema { return &genai.Schema{Type: genai.TypeArray, Items: str()} }

	cues := make([]string, len(models.SoundCues))
	for i, c := range models.SoundCues {
		cues[i] = string(c)
	}
	phases := make([]string, len(models.GamePhases))
	for i, p := range models.GamePhases {
		phases[i] = string(p)
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"story":       str(),
			"imagePrompt": str(),
			"soundCue":    {Type: genai.TypeString, Format: "enum", Enum: cues},
			"gameState": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"health":        num(),
					"oxygen":        num(),
					"hunger":        num(),
					"thirst":        num(),
					"temperature":   num(),
					"time":          str(),
					"location":      str(),
					"inventory":     list(),
					"knowledgeBase": list(),
					"visualContext": str(),
					"isGameOver":    {Type: genai.TypeBoolean},
					"gamePhase":     {Type: genai.TypeString, Format: "enum", Enum: phases},
				},
				Required: []string{"health", "oxygen", "hunger", "thirst", "temperature", "time", "location", "inventory", "knowledgeBase", "visualContext", "isGameOver", "gamePhase"},
			},
		},
		Required: []string{"story", "imagePrompt", "soundCue", "gameState"},
	}
}
