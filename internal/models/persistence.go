package models

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Journal writes a record of every resolved turn to disk. It is write-only:
// nothing in the game reads a journal back.
type Journal struct {
	dir string
}

// NewJournal creates a journal for one session under root. Each session gets
// its own timestamped directory.
func NewJournal(root string, started time.Time) (*Journal, error) {
	dir := filepath.Join(root, started.Format("20060102-150405"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Journal{dir: dir}, nil
}

// Dir returns the session directory.
func (j *Journal) Dir() string {
	return j.dir
}

// SaveImage stores a turn's scene image and returns its path. The file
// extension follows mimeType.
func (j *Journal) SaveImage(turn int, data []byte, mimeType string) (string, error) {
	path := filepath.Join(j.dir, fmt.Sprintf("turn-%03d%s", turn, imageExt(mimeType)))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func imageExt(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	return ".jpg"
}

// turnRecord is the on-disk shape of one journal entry.
type turnRecord struct {
	Turn   int        `yaml:"turn"`
	Action string     `yaml:"action"`
	Result TurnResult `yaml:"result"`
}

// SaveTurn writes turn-NNN.yaml for the given turn.
func (j *Journal) SaveTurn(turn int, action string, result TurnResult) error {
	data, err := yaml.Marshal(turnRecord{Turn: turn, Action: action, Result: result})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(j.dir, fmt.Sprintf("turn-%03d.yaml", turn)), data, 0644)
}
