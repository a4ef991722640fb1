package engine

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"text/template"

	"github.com/tatianab/last-survivor/internal/models"
)

//go:embed prompts/system_instruction.txt
var systemInstruction string

//go:embed prompts/process_turn.txt
var processTurnPrompt string

var processTurnTmpl = template.Must(template.New("process_turn").Parse(processTurnPrompt))

func turnPrompt(state models.GameState, history []string, action string) (string, error) {
	inventory, err := json.Marshal(state.Inventory)
	if err != nil {
		return "", err
	}

	data := struct {
		State     models.GameState
		Inventory string
		History   []string
		Action    string
	}{
		State:     state,
		Inventory: string(inventory),
		History:   history,
		Action:    action,
	}

	var buf bytes.Buffer
	if err := processTurnTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
