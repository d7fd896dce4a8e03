package taxonomy

import "strings"

// Level is an ordinal proficiency tier. The four known tiers form a strict
// total order: beginner < intermediate < advanced < expert.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

var levelOrdinals = map[Level]int{
	LevelBeginner:     1,
	LevelIntermediate: 2,
	LevelAdvanced:     3,
	LevelExpert:       4,
}

// Ordinal returns the level's position in the proficiency order, or 0 when
// the level is unknown. Callers that need fail-soft behavior should normalize
// with Or first.
func (l Level) Ordinal() int {
	return levelOrdinals[l.canonical()]
}

// Known reports whether the level is one of the four defined tiers.
func (l Level) Known() bool {
	_, ok := levelOrdinals[l.canonical()]
	return ok
}

// Or returns the level itself when known and fallback otherwise. Matching is
// case-insensitive, so "Advanced" normalizes to advanced.
func (l Level) Or(fallback Level) Level {
	if c := l.canonical(); c.Known() {
		return c
	}
	return fallback
}

func (l Level) canonical() Level {
	return Level(strings.ToLower(strings.TrimSpace(string(l))))
}

// Importance is the declared priority of a requirement.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// Or returns the importance itself when it is a known priority and fallback
// otherwise.
func (i Importance) Or(fallback Importance) Importance {
	switch Importance(strings.ToLower(strings.TrimSpace(string(i)))) {
	case ImportanceHigh:
		return ImportanceHigh
	case ImportanceMedium:
		return ImportanceMedium
	case ImportanceLow:
		return ImportanceLow
	}
	return fallback
}

// Weights maps requirement importance to the multiplier applied to a match
// score. The defaults are inherited placeholder constants pending
// domain-expert validation, so they stay overridable.
type Weights struct {
	High   float64 `yaml:"high" mapstructure:"high"`
	Medium float64 `yaml:"medium" mapstructure:"medium"`
	Low    float64 `yaml:"low" mapstructure:"low"`
}

// DefaultWeights returns the default importance weights.
func DefaultWeights() Weights {
	return Weights{High: 0.4, Medium: 0.3, Low: 0.2}
}

// For returns the weight for the given importance. Unknown importance values
// weigh as medium.
func (w Weights) For(i Importance) float64 {
	switch i.Or(ImportanceMedium) {
	case ImportanceHigh:
		return w.High
	case ImportanceLow:
		return w.Low
	default:
		return w.Medium
	}
}

// Skill is a single skill a person holds.
type Skill struct {
	Name      string  `json:"skill" yaml:"skill" mapstructure:"skill"`
	Level     Level   `json:"level,omitempty" yaml:"level,omitempty" mapstructure:"level"`
	Years     float64 `json:"years,omitempty" yaml:"years,omitempty" mapstructure:"years"`
	Certified bool    `json:"certified,omitempty" yaml:"certified,omitempty" mapstructure:"certified"`
}

// Requirement is a single skill a job or role demands.
type Requirement struct {
	Name       string     `json:"skill" yaml:"skill" mapstructure:"skill"`
	Level      Level      `json:"level,omitempty" yaml:"level,omitempty" mapstructure:"level"`
	Importance Importance `json:"importance,omitempty" yaml:"importance,omitempty" mapstructure:"importance"`
}

// Experience is one entry of a work history.
type Experience struct {
	Title   string  `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	Company string  `json:"company,omitempty" yaml:"company,omitempty" mapstructure:"company"`
	Years   float64 `json:"years,omitempty" yaml:"years,omitempty" mapstructure:"years"`
}

// Key normalizes a skill name into its case-insensitive lookup key. Matching
// is exact after normalization; no fuzzy or semantic matching happens anywhere
// in the engine.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SkillSet is a lookup from normalized skill name to record.
type SkillSet map[string]Skill

// NewSkillSet builds a SkillSet from a list of skills. Later entries with the
// same normalized name win.
func NewSkillSet(skills []Skill) SkillSet {
	set := make(SkillSet, len(skills))
	for _, skill := range skills {
		key := Key(skill.Name)
		if key == "" {
			continue
		}
		set[key] = skill
	}
	return set
}

// Lookup returns the skill stored under the normalized form of name.
func (s SkillSet) Lookup(name string) (Skill, bool) {
	skill, ok := s[Key(name)]
	return skill, ok
}
