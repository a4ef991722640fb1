package physics

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tier is an action's physiological cost class.
type Tier string

const (
	TierHigh   Tier = "HIGH"
	TierMedium Tier = "MED"
	TierLow    Tier = "LOW"
	// TierBase applies when no rule matches.
	TierBase Tier = "BASE"
)

// Cost is what one turn takes out of the player's reserves.
type Cost struct {
	Hunger float64
	Thirst float64
	Oxygen float64
}

// DefaultCosts is the cost triple for each tier.
var DefaultCosts = map[Tier]Cost{
	TierHigh:   {Hunger: 5, Thirst: 8, Oxygen: 5},
	TierMedium: {Hunger: 3, Thirst: 4, Oxygen: 2},
	TierLow:    {Hunger: 1, Thirst: 1, Oxygen: 1},
	TierBase:   {Hunger: 1, Thirst: 2, Oxygen: 1},
}

// EffortRule maps a family of keyword stems to a tier.
type EffortRule struct {
	Tier     Tier
	Keywords []string
}

// Lexicon holds the locale-specific keyword tables used to read an action.
// Rules are tried in order; the first match wins.
type Lexicon struct {
	Rules    []EffortRule
	Eating   []string
	Drinking []string
	// Match reports whether keyword kw occurs in the lowercased text.
	// Nil means plain substring matching.
	Match func(text, kw string) bool
}

// ErrUnknownLocale is returned by LexiconFor for an unsupported locale.
var ErrUnknownLocale = errors.New("unknown locale")

// LexiconFor returns the lexicon for a locale code ("ru" or "en").
func LexiconFor(locale string) (Lexicon, error) {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "ru":
		return RussianLexicon(), nil
	case "en":
		return EnglishLexicon(), nil
	}
	return Lexicon{}, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
}

// RussianLexicon is the default lexicon.
func RussianLexicon() Lexicon {
	return Lexicon{
		Rules: []EffortRule{
			{Tier: TierHigh, Keywords: []string{"беж", "бег", "быстро", "рывок", "лом", "тащ", "подн", "дра", "удар"}},
			{Tier: TierMedium, Keywords: []string{"идт", "пойти", "иска", "оде", "взят", "откр"}},
		},
		Eating:   []string{"ест", "съел", "куша", "хава", "жра"},
		Drinking: []string{"пил", "выпил", "глот"},
	}
}

// EnglishLexicon covers English input. English keywords are words, not
// stems, so they only match at the start of a word: "eat" matches "eating"
// but not "heat".
func EnglishLexicon() Lexicon {
	return Lexicon{
		Rules: []EffortRule{
			{Tier: TierHigh, Keywords: []string{"run", "sprint", "dash", "break", "smash", "drag", "lift", "fight", "punch", "hit"}},
			{Tier: TierMedium, Keywords: []string{"walk", "go ", "search", "look for", "dress", "put on", "take", "grab", "open"}},
		},
		Eating:   []string{"eat", "chew", "devour"},
		Drinking: []string{"drink", "drank", "sip", "swallow"},
		Match:    WordPrefix,
	}
}

// Classifier assigns effort tiers and consumption intents to action text.
type Classifier struct {
	lexicon Lexicon
	costs   map[Tier]Cost
}

// NewClassifier returns a classifier over lex using DefaultCosts.
func NewClassifier(lex Lexicon) *Classifier {
	if lex.Match == nil {
		lex.Match = strings.Contains
	}
	return &Classifier{lexicon: lex, costs: DefaultCosts}
}

// Tier returns the first tier whose keywords appear in action.
func (c *Classifier) Tier(action string) Tier {
	text := strings.ToLower(action)
	for _, rule := range c.lexicon.Rules {
		if c.containsAny(text, rule.Keywords) {
			return rule.Tier
		}
	}
	return TierBase
}

// Classify returns the cost of action. The returned value is a copy.
func (c *Classifier) Classify(action string) Cost {
	return c.costs[c.Tier(action)]
}

// IsEating reports whether action expresses eating.
func (c *Classifier) IsEating(action string) bool {
	return c.containsAny(strings.ToLower(action), c.lexicon.Eating)
}

// IsDrinking reports whether action expresses drinking.
func (c *Classifier) IsDrinking(action string) bool {
	return c.containsAny(strings.ToLower(action), c.lexicon.Drinking)
}

func (c *Classifier) containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if c.lexicon.Match(text, kw) {
			return true
		}
	}
	return false
}

// WordPrefix reports whether kw occurs in text starting at a word boundary.
func WordPrefix(text, kw string) bool {
	if kw == "" {
		return false
	}
	for offset := 0; offset <= len(text)-len(kw); {
		i := strings.Index(text[offset:], kw)
		if i < 0 {
			return false
		}
		i += offset
		before, _ := utf8.DecodeLastRuneInString(text[:i])
		if i == 0 || !(unicode.IsLetter(before) || unicode.IsDigit(before)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		offset = i + size
	}
	return false
}
