package models

// GamePhase is a narrative stage of the run, in story order.
type GamePhase string

const (
	PhaseAwakening            GamePhase = "awakening"
	PhaseGathering            GamePhase = "gathering"
	PhaseRunToBunker          GamePhase = "run_to_bunker"
	PhaseBunkerLife           GamePhase = "bunker_life"
	PhaseWastelandExploration GamePhase = "wasteland_exploration"
	PhaseBaseLooting          GamePhase = "base_looting"
	PhaseSpaceLaunch          GamePhase = "space_launch"
	PhaseMarsColonization     GamePhase = "mars_colonization"
)

// GamePhases lists every phase in story order.
var GamePhases = []GamePhase{
	PhaseAwakening,
	PhaseGathering,
	PhaseRunToBunker,
	PhaseBunkerLife,
	PhaseWastelandExploration,
	PhaseBaseLooting,
	PhaseSpaceLaunch,
	PhaseMarsColonization,
}

// Valid reports whether p is one of the known phases.
func (p GamePhase) Valid() bool {
	for _, known := range GamePhases {
		if p == known {
			return true
		}
	}
	return false
}

// SoundCue is the ambient sound the narrator picks for a turn.
type SoundCue string

const (
	SoundNone        SoundCue = "NONE"
	SoundFootsteps   SoundCue = "FOOTSTEPS"
	SoundClothRustle SoundCue = "CLOTH_RUSTLE"
	SoundDoorOpen    SoundCue = "DOOR_OPEN"
	SoundHeartbeat   SoundCue = "HEARTBEAT"
	SoundAlarm       SoundCue = "ALARM"
	SoundFireCrackle SoundCue = "FIRE_CRACKLE"
	SoundBreathing   SoundCue = "BREATHING"
)

// SoundCues lists every cue the narrator may choose.
var SoundCues = []SoundCue{
	SoundNone,
	SoundFootsteps,
	SoundClothRustle,
	SoundDoorOpen,
	SoundHeartbeat,
	SoundAlarm,
	SoundFireCrackle,
	SoundBreathing,
}

// Valid reports whether c is one of the known cues.
func (c SoundCue) Valid() bool {
	for _, known := range SoundCues {
		if c == known {
			return true
		}
	}
	return false
}

// GameState is a snapshot of the world. A turn never edits a snapshot in
// place; it derives a new one.
type GameState struct {
	Health        float64   `json:"health" yaml:"health"`
	Oxygen        float64   `json:"oxygen" yaml:"oxygen"`
	Hunger        float64   `json:"hunger" yaml:"hunger"` // 100 = full
	Thirst        float64   `json:"thirst" yaml:"thirst"` // 100 = hydrated
	Temperature   float64   `json:"temperature" yaml:"temperature"`
	Time          string    `json:"time" yaml:"time"` // "HH:MM", 24-hour
	Location      string    `json:"location" yaml:"location"`
	Inventory     []string  `json:"inventory" yaml:"inventory"`
	KnowledgeBase []string  `json:"knowledgeBase" yaml:"knowledge_base"`
	VisualContext string    `json:"visualContext" yaml:"visual_context"`
	IsGameOver    bool      `json:"isGameOver" yaml:"is_game_over"`
	GamePhase     GamePhase `json:"gamePhase" yaml:"game_phase"`
}

// Clone returns a deep copy of s.
func (s GameState) Clone() GameState {
	out := s
	out.Inventory = append([]string(nil), s.Inventory...)
	out.KnowledgeBase = append([]string(nil), s.KnowledgeBase...)
	return out
}

// TurnResult is everything one resolved turn produces.
type TurnResult struct {
	Story       string    `yaml:"story"`
	ImagePrompt string    `yaml:"image_prompt"`
	SoundCue    SoundCue  `yaml:"sound_cue"`
	State       GameState `yaml:"state"`
	// ImageRef points at the accepted scene image; empty when the turn is text-only.
	ImageRef      string `yaml:"image_ref,omitempty"`
	ImageMIMEType string `yaml:"image_mime_type,omitempty"`
	Image         []byte `yaml:"-"`
	// Degraded is set when the narrator failed and State is the previous snapshot.
	Degraded bool `yaml:"degraded,omitempty"`
}

// HasImage reports whether the turn carries a scene image.
func (r TurnResult) HasImage() bool {
	return len(r.Image) > 0
}

// InitialState returns the fixed snapshot every session starts from.
func InitialState() GameState {
	return GameState{
		Health:      100,
		Oxygen:      100,
		Hunger:      100,
		Thirst:      100,
		Temperature: 28,
		Time:        "03:00",
		Location:    "Спальня (Кровать)",
		Inventory:   []string{"Смартфон"},
		KnowledgeBase: []string{
			"СТАТУС: Игрок проснулся в 03:00 ночи.",
			"ЛОР: 4 Миллиарда лет спустя. Красный Гигант занимает полнеба.",
			"ЛОР: Возраст игрока заморожен, но тело уязвимо.",
			"ЦЕЛЬ: Выжить до рассвета (05:00) и найти БУНКЕРА.",
			"ОКРУЖЕНИЕ: 03:00. Ночь. Темно, но горизонт светится красным.",
		},
		VisualContext: "POV: Лежу в кровати. Видны мои ноги под одеялом. Темная спальня, слабый красный свет сквозь жалюзи. В руке смартфон.",
		GamePhase:     PhaseAwakening,
	}
}

// IntroAction is played on the player's behalf to open the story.
const IntroAction = "СИТУАЦИЯ: 03:00 ночи. Я ЛЕЖУ в своей кровати. Комната ЦЕЛАЯ, порядок, но очень душно. Жалюзи на окнах закрыты, но сквозь щели пробивается зловещее темно-красное свечение с улицы. Я подношу Смартфон к лицу, чтобы проверить время."
