package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestJournalSaveTurn(t *testing.T) {
	j, err := NewJournal(t.TempDir(), time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatalf("Failed to create journal: %v", err)
	}
	if filepath.Base(j.Dir()) != "20260102-030405" {
		t.Errorf("Unexpected journal dir %s", j.Dir())
	}

	ref, err := j.SaveImage(1, []byte{0xff, 0xd8}, "image/jpeg")
	if err != nil {
		t.Fatalf("Failed to save image: %v", err)
	}
	if filepath.Base(ref) != "turn-001.jpg" {
		t.Errorf("Unexpected image path %s", ref)
	}

	result := TurnResult{
		Story:    "Жарко.",
		SoundCue: SoundBreathing,
		State:    InitialState(),
		ImageRef: ref,
		Image:    []byte{0xff, 0xd8},
	}
	if err := j.SaveTurn(1, "я встаю", result); err != nil {
		t.Fatalf("Failed to save turn: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(j.Dir(), "turn-001.yaml"))
	if err != nil {
		t.Fatalf("Failed to read turn file: %v", err)
	}
	var record turnRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		t.Fatalf("Failed to unmarshal turn file: %v", err)
	}
	if record.Action != "я встаю" {
		t.Errorf("Expected action to be recorded, got %q", record.Action)
	}
	if record.Result.State.Time != "03:00" {
		t.Errorf("Expected time 03:00, got %s", record.Result.State.Time)
	}
	if record.Result.Image != nil {
		t.Errorf("Image bytes must not be inlined in the journal")
	}
}

func TestJournalImageExtension(t *testing.T) {
	j, err := NewJournal(t.TempDir(), time.Now())
	if err != nil {
		t.Fatalf("Failed to create journal: %v", err)
	}
	tests := []struct {
		mimeType string
		want     string
	}{
		{"image/png", "turn-002.png"},
		{"image/webp", "turn-002.webp"},
		{"image/jpeg", "turn-002.jpg"},
		{"", "turn-002.jpg"},
	}
	for _, tt := range tests {
		ref, err := j.SaveImage(2, []byte{1}, tt.mimeType)
		if err != nil {
			t.Fatalf("Failed to save image: %v", err)
		}
		if filepath.Base(ref) != tt.want {
			t.Errorf("SaveImage(%q) = %s, want %s", tt.mimeType, filepath.Base(ref), tt.want)
		}
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	s := InitialState()
	c := s.Clone()
	c.Inventory[0] = "Нож"
	c.KnowledgeBase = append(c.KnowledgeBase, "новый факт")

	if s.Inventory[0] != "Смартфон" {
		t.Errorf("Clone shares inventory with original")
	}
	if len(s.KnowledgeBase) != 5 {
		t.Errorf("Clone shares knowledge base with original")
	}
}

func TestEnumsValid(t *testing.T) {
	if !PhaseMarsColonization.Valid() || GamePhase("moon").Valid() {
		t.Errorf("GamePhase.Valid misclassifies")
	}
	if !SoundFireCrackle.Valid() || SoundCue("BOOM").Valid() {
		t.Errorf("SoundCue.Valid misclassifies")
	}
}
