package physics

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tatianab/last-survivor/internal/models"
)

func TestTemperature(t *testing.T) {
	tests := []struct {
		clock string
		want  float64
	}{
		{"03:00", 28},
		{"03:30", 30}, // 28 + 0.0625*32
		{"04:00", 36},
		{"04:30", 46}, // 28 + 0.5625*32
		{"05:00", 60},
		{"05:10", 65},
		{"06:00", 90},
		{"02:00", 28}, // before the reference point
	}
	for _, tt := range tests {
		elapsed, err := ElapsedMinutes(tt.clock)
		if err != nil {
			t.Fatalf("ElapsedMinutes(%q): %v", tt.clock, err)
		}
		if got := Temperature(elapsed); got != tt.want {
			t.Errorf("Temperature at %s = %v, want %v", tt.clock, got, tt.want)
		}
	}
}

func TestTemperatureTruncates(t *testing.T) {
	// 04:50: progress 110/120, 28 + 0.8402*32 = 54.88
	if got := Temperature(110); got != 54 {
		t.Errorf("Temperature(110) = %v, want 54", got)
	}
}

func TestParseClock(t *testing.T) {
	for _, bad := range []string{"", "3:00", "03:0", "0300", "24:00", "03:60", "ab:cd", "+3:00", "03:+5", "-1:00"} {
		if _, err := ParseClock(bad); !errors.Is(err, ErrTimeFormat) {
			t.Errorf("ParseClock(%q) error = %v, want ErrTimeFormat", bad, err)
		}
	}
	got, err := ParseClock("23:59")
	if err != nil || got != 23*60+59 {
		t.Errorf("ParseClock(23:59) = %d, %v", got, err)
	}
}

func TestClassifierTiers(t *testing.T) {
	c := NewClassifier(RussianLexicon())
	tests := []struct {
		action string
		want   Tier
	}{
		{"я бегу", TierHigh},
		{"Ломаю дверь", TierHigh},
		{"хочу идти на кухню", TierMedium},
		{"открываю окно", TierMedium},
		{"бегу и открываю дверь", TierHigh},
		{"смотрю в окно", TierBase},
	}
	for _, tt := range tests {
		if got := c.Tier(tt.action); got != tt.want {
			t.Errorf("Tier(%q) = %s, want %s", tt.action, got, tt.want)
		}
	}
	if c.Classify("я бегу") != (Cost{Hunger: 5, Thirst: 8, Oxygen: 5}) {
		t.Errorf("unexpected HIGH cost %+v", c.Classify("я бегу"))
	}
	if c.Classify("смотрю") != (Cost{Hunger: 1, Thirst: 2, Oxygen: 1}) {
		t.Errorf("unexpected base cost %+v", c.Classify("смотрю"))
	}
}

func TestClassifierCustomLexicon(t *testing.T) {
	c := NewClassifier(Lexicon{Rules: []EffortRule{{Tier: TierLow, Keywords: []string{"rest"}}}})
	if got := c.Tier("I rest a while"); got != TierLow {
		t.Errorf("Tier = %s, want LOW", got)
	}
	if c.IsEating("I eat") {
		t.Errorf("empty eating table must not match")
	}

	en := NewClassifier(EnglishLexicon())
	if en.Tier("I run to the door") != TierHigh || !en.IsDrinking("drink the water") || en.IsEating("drink the water") {
		t.Errorf("English lexicon misclassifies")
	}
}

func TestEnglishLexiconMatchesWords(t *testing.T) {
	c := NewClassifier(EnglishLexicon())
	tests := []struct {
		action   string
		eating   bool
		drinking bool
		tier     Tier
	}{
		{"I wipe the sweat off", false, false, TierBase},
		{"I hide from the heat", false, false, TierBase},
		{"I sit on the seat", false, false, TierBase},
		{"that was a great idea", false, false, TierBase},
		{"look at the white wall", false, false, TierBase},
		{"what a mistake", false, false, TierBase},
		{"I eat the crackers", true, false, TierBase},
		{"Eating beans, then I run", true, false, TierHigh},
		{"(eat) quickly", true, false, TierBase},
		{"I take the bottle and drink", false, true, TierMedium},
		{"I hit the door", false, false, TierHigh},
	}
	for _, tt := range tests {
		if got := c.IsEating(tt.action); got != tt.eating {
			t.Errorf("IsEating(%q) = %v, want %v", tt.action, got, tt.eating)
		}
		if got := c.IsDrinking(tt.action); got != tt.drinking {
			t.Errorf("IsDrinking(%q) = %v, want %v", tt.action, got, tt.drinking)
		}
		if got := c.Tier(tt.action); got != tt.tier {
			t.Errorf("Tier(%q) = %s, want %s", tt.action, got, tt.tier)
		}
	}
}

func TestCorrectEnglishHeatIsNotEating(t *testing.T) {
	prev := baseState()
	proposed := baseState()
	proposed.Time = "03:10"
	proposed.Hunger = 100

	got := NewEnforcer(NewClassifier(EnglishLexicon())).Correct(prev, "I hide from the heat", proposed)
	if got.Hunger != 49 {
		t.Errorf("hunger = %v, want 49", got.Hunger)
	}
}

func TestWordPrefix(t *testing.T) {
	tests := []struct {
		text, kw string
		want     bool
	}{
		{"eat", "eat", true},
		{"heat then eat", "eat", true},
		{"heat", "eat", false},
		{"", "eat", false},
		{"eat", "", false},
		{"ещё ест", "ест", true},
		{"лестница", "ест", false},
	}
	for _, tt := range tests {
		if got := WordPrefix(tt.text, tt.kw); got != tt.want {
			t.Errorf("WordPrefix(%q, %q) = %v, want %v", tt.text, tt.kw, got, tt.want)
		}
	}
}

func TestLexiconFor(t *testing.T) {
	for _, locale := range []string{"ru", "en", "EN"} {
		if _, err := LexiconFor(locale); err != nil {
			t.Errorf("LexiconFor(%q): %v", locale, err)
		}
	}
	if _, err := LexiconFor("de"); !errors.Is(err, ErrUnknownLocale) {
		t.Errorf("LexiconFor(de) error = %v, want ErrUnknownLocale", err)
	}
	en, _ := LexiconFor("en")
	if en.Match == nil {
		t.Errorf("English lexicon must match on word boundaries")
	}
}

func TestClassifyReturnsCopy(t *testing.T) {
	c := NewClassifier(RussianLexicon())
	cost := c.Classify("я бегу")
	cost.Thirst += 100
	if DefaultCosts[TierHigh].Thirst != 8 {
		t.Fatalf("Classify leaked a reference to the cost table")
	}
}

func baseState() models.GameState {
	return models.GameState{
		Health: 100, Oxygen: 100, Hunger: 50, Thirst: 50,
		Time: "03:00", Location: "Спальня",
		Inventory:     []string{"Смартфон"},
		KnowledgeBase: []string{"факт"},
		GamePhase:     models.PhaseAwakening,
	}
}

func newEnforcer() *Enforcer {
	return NewEnforcer(NewClassifier(RussianLexicon()))
}

func TestCorrectRunningCannotHealHunger(t *testing.T) {
	prev := baseState()
	proposed := baseState()
	proposed.Time = "03:10"
	proposed.Hunger = 80
	proposed.Thirst = 90

	got := newEnforcer().Correct(prev, "я бегу", proposed)
	if got.Hunger != 45 {
		t.Errorf("hunger = %v, want 45", got.Hunger)
	}
	if got.Thirst != 42 {
		t.Errorf("thirst = %v, want 42", got.Thirst)
	}
	if got.Oxygen != 95 {
		t.Errorf("oxygen = %v, want 95", got.Oxygen)
	}
}

func TestCorrectKeepsLowerProposal(t *testing.T) {
	prev := baseState()
	proposed := baseState()
	proposed.Time = "03:10"
	proposed.Hunger = 20

	got := newEnforcer().Correct(prev, "смотрю", proposed)
	if got.Hunger != 20 {
		t.Errorf("hunger = %v, want the lower proposal 20", got.Hunger)
	}
}

func TestCorrectEatingPassesThrough(t *testing.T) {
	prev := baseState()
	proposed := baseState()
	proposed.Time = "03:10"
	proposed.Hunger = 70
	proposed.Thirst = 90

	got := newEnforcer().Correct(prev, "я съел консервы", proposed)
	if got.Hunger != 70 {
		t.Errorf("hunger = %v, want 70", got.Hunger)
	}
	if got.Thirst != 48 {
		t.Errorf("thirst = %v, want 48 (drinking not detected)", got.Thirst)
	}

	got = newEnforcer().Correct(prev, "выпил воду", proposed)
	if got.Thirst != 90 {
		t.Errorf("thirst = %v, want 90", got.Thirst)
	}
}

func TestCorrectResourcesClamped(t *testing.T) {
	prev := baseState()
	proposed := baseState()
	proposed.Time = "03:10"
	proposed.Hunger = 140
	proposed.Health = 130
	proposed.Oxygen = -20

	got := newEnforcer().Correct(prev, "съел шоколад", proposed)
	if got.Hunger != 100 || got.Health != 100 || got.Oxygen != 0 {
		t.Errorf("resources not clamped: %+v", got)
	}
}

func TestCorrectOxygenAlwaysDecays(t *testing.T) {
	prev := baseState()
	prev.Oxygen = 60
	proposed := baseState()
	proposed.Time = "03:10"
	proposed.Oxygen = 100

	got := newEnforcer().Correct(prev, "пью и ем, глотаю воздух", proposed)
	if got.Oxygen != 59 {
		t.Errorf("oxygen = %v, want 59", got.Oxygen)
	}
}

func TestCorrectTemperatureIgnoresProposal(t *testing.T) {
	prev := baseState()
	a := baseState()
	a.Time = "04:00"
	a.Temperature = -40
	b := a
	b.Temperature = 999

	e := newEnforcer()
	ta := e.Correct(prev, "смотрю", a).Temperature
	tb := e.Correct(prev, "смотрю", b).Temperature
	if ta != 36 || tb != 36 {
		t.Errorf("temperatures = %v, %v, want 36", ta, tb)
	}
}

func TestCorrectHazard(t *testing.T) {
	prev := baseState()
	prev.Time = "04:55"
	proposed := baseState()
	proposed.Time = "05:00"
	proposed.Health = 90

	got := newEnforcer().Correct(prev, "смотрю", proposed)
	if got.Temperature != 60 {
		t.Fatalf("temperature = %v, want 60", got.Temperature)
	}
	if got.Health != 85 {
		t.Errorf("health = %v, want 85", got.Health)
	}
	// base cost plus the heat penalty
	if got.Thirst != 50-2-5 {
		t.Errorf("thirst = %v, want 43", got.Thirst)
	}
	if got.Hunger != 50-1-2 {
		t.Errorf("hunger = %v, want 47", got.Hunger)
	}
}

func TestCorrectHazardBelowThreshold(t *testing.T) {
	prev := baseState()
	proposed := baseState()
	proposed.Time = "04:30" // 46 degrees
	proposed.Health = 90

	got := newEnforcer().Correct(prev, "смотрю", proposed)
	if got.Health != 90 {
		t.Errorf("health = %v, want 90 below the hazard threshold", got.Health)
	}
}

func TestCorrectGameOver(t *testing.T) {
	prev := baseState()
	prev.Time = "05:30"
	proposed := baseState()
	proposed.Time = "05:40"
	proposed.Health = 3

	got := newEnforcer().Correct(prev, "смотрю", proposed)
	if got.Health != 0 || !got.IsGameOver {
		t.Fatalf("expected death, got health %v over %v", got.Health, got.IsGameOver)
	}

	revived := got.Clone()
	revived.Time = "05:50"
	revived.Health = 100
	revived.IsGameOver = false
	again := newEnforcer().Correct(got, "смотрю", revived)
	if !again.IsGameOver {
		t.Errorf("game over was cleared")
	}
}

func TestCorrectClockFallback(t *testing.T) {
	prev := baseState()
	prev.Time = "04:00"

	proposed := baseState()
	proposed.Time = "four o'clock"
	got := newEnforcer().Correct(prev, "смотрю", proposed)
	if got.Time != "04:00" || got.Temperature != 36 {
		t.Errorf("malformed time: got %s / %v, want previous time", got.Time, got.Temperature)
	}

	proposed.Time = "03:30"
	got = newEnforcer().Correct(prev, "смотрю", proposed)
	if got.Time != "04:00" {
		t.Errorf("time moved backwards to %s", got.Time)
	}

	prev.Time = "??"
	proposed.Time = "??"
	got = newEnforcer().Correct(prev, "смотрю", proposed)
	if got.Time != "03:00" || got.Temperature != 28 {
		t.Errorf("double malformed: got %s / %v, want 03:00 / 28", got.Time, got.Temperature)
	}
}

func TestCorrectDoesNotMutateInputs(t *testing.T) {
	prev := baseState()
	proposed := baseState()
	proposed.Time = "05:20"
	proposed.Hunger = 99
	prevCopy := prev.Clone()
	proposedCopy := proposed.Clone()

	got := newEnforcer().Correct(prev, "я бегу", proposed)
	got.Inventory[0] = "Нож"

	if !reflect.DeepEqual(prev, prevCopy) {
		t.Errorf("previous state mutated")
	}
	if !reflect.DeepEqual(proposed, proposedCopy) {
		t.Errorf("proposed state mutated")
	}
}

func TestCorrectPassesNarrativeFields(t *testing.T) {
	prev := baseState()
	proposed := baseState()
	proposed.Time = "03:15"
	proposed.Location = "Кухня"
	proposed.Inventory = []string{"Смартфон", "Нож"}
	proposed.VisualContext = "POV: кухня"
	proposed.GamePhase = models.PhaseGathering

	got := newEnforcer().Correct(prev, "иду на кухню", proposed)
	if got.Location != "Кухня" || got.VisualContext != "POV: кухня" || got.GamePhase != models.PhaseGathering {
		t.Errorf("narrative fields changed: %+v", got)
	}
	if !reflect.DeepEqual(got.Inventory, proposed.Inventory) {
		t.Errorf("inventory = %v, want %v", got.Inventory, proposed.Inventory)
	}
}
