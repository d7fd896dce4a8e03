// Package skillgap compares current skills against a target skill set and
// classifies the resulting gaps.
package skillgap

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/talentforge/talentforge/internal/taxonomy"
)

// Scope selects whose skills are being analyzed.
type Scope string

const (
	ScopeIndividual Scope = "individual"
	ScopeTeam       Scope = "team"
	ScopeRole       Scope = "role"
)

// Severity is the qualitative tier of a skill gap.
type Severity string

const (
	SeverityNone   Severity = "None"
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Config holds the classification and timeline constants. Defaults carry
// unvalidated placeholder values and stay overridable.
type Config struct {
	// A gap of HighGapSize or more full levels is High; exactly one level
	// is Medium. Low is reserved for sub-level granularity the four-tier
	// model cannot currently produce.
	HighGapSize int `yaml:"high-gap-size" mapstructure:"high-gap-size"`

	// DevelopmentTimes is keyed by current level, then gap size.
	DevelopmentTimes       map[taxonomy.Level]map[int]string `yaml:"development-times" mapstructure:"development-times"`
	DefaultDevelopmentTime string                            `yaml:"default-development-time" mapstructure:"default-development-time"`

	// Timeline month costs and bucket bounds.
	HighGapMonths     int `yaml:"high-gap-months" mapstructure:"high-gap-months"`
	HighMissingMonths int `yaml:"high-missing-months" mapstructure:"high-missing-months"`
	OtherSkillMonths  int `yaml:"other-skill-months" mapstructure:"other-skill-months"`
	ShortTermMonths   int `yaml:"short-term-months" mapstructure:"short-term-months"`
	MediumTermMonths  int `yaml:"medium-term-months" mapstructure:"medium-term-months"`
	LongTermMonths    int `yaml:"long-term-months" mapstructure:"long-term-months"`
}

// DefaultConfig returns the built-in analyzer constants.
func DefaultConfig() Config {
	return Config{
		HighGapSize: 2,
		DevelopmentTimes: map[taxonomy.Level]map[int]string{
			taxonomy.LevelBeginner:     {1: "3-6 months", 2: "6-12 months", 3: "12-18 months"},
			taxonomy.LevelIntermediate: {1: "2-4 months", 2: "4-8 months", 3: "8-12 months"},
			taxonomy.LevelAdvanced:     {1: "1-3 months", 2: "3-6 months", 3: "6-9 months"},
		},
		DefaultDevelopmentTime: "3-6 months",
		HighGapMonths:          3,
		HighMissingMonths:      6,
		OtherSkillMonths:       2,
		ShortTermMonths:        3,
		MediumTermMonths:       6,
		LongTermMonths:         12,
	}
}

// Match is a required skill already held at or above the required level.
type Match struct {
	Skill         string         `json:"skill"`
	CurrentLevel  taxonomy.Level `json:"current_level"`
	RequiredLevel taxonomy.Level `json:"required_level"`
	MatchScore    float64        `json:"match_score"`
}

// Gap is a required skill held below the required level.
type Gap struct {
	Skill           string              `json:"skill"`
	CurrentLevel    taxonomy.Level      `json:"current_level"`
	RequiredLevel   taxonomy.Level      `json:"required_level"`
	GapSize         int                 `json:"gap_size"`
	Severity        Severity            `json:"gap_severity"`
	DevelopmentTime string              `json:"development_time"`
	Importance      taxonomy.Importance `json:"importance"`
}

// MissingSkill is a required skill with no current entry at all. It is always
// High severity.
type MissingSkill struct {
	Skill         string              `json:"skill"`
	RequiredLevel taxonomy.Level      `json:"required_level"`
	Importance    taxonomy.Importance `json:"importance"`
	Severity      Severity            `json:"gap_severity"`
}

// Summary aggregates counts over the analysis.
type Summary struct {
	TotalRequired     int     `json:"total_required_skills"`
	Matched           int     `json:"matched_skills"`
	GapSkills         int     `json:"gap_skills"`
	CompletionPercent float64 `json:"completion_percentage"`
}

// Timeline is the aggregate development estimate.
type Timeline struct {
	Label           string `json:"timeline"`
	EstimatedMonths int    `json:"estimated_months"`
	CriticalSkills  int    `json:"critical_skills_count"`
}

// Result is the full outcome of a gap analysis.
type Result struct {
	Scope           Scope          `json:"analysis_type"`
	OverallScore    float64        `json:"overall_score"`
	Matches         []Match        `json:"skill_matches"`
	Gaps            []Gap          `json:"skill_gaps"`
	MissingSkills   []MissingSkill `json:"missing_skills"`
	Summary         Summary        `json:"summary"`
	Recommendations []string       `json:"recommendations"`
	Timeline        Timeline       `json:"development_timeline"`
	AnalyzedAt      time.Time      `json:"analyzed_at"`
}

// Analyzer classifies skill gaps. It holds no mutable state and is safe for
// concurrent use.
type Analyzer struct {
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// New creates an analyzer with the provided config.
func New(cfg Config, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{cfg: cfg, logger: logger, now: time.Now}
}

// WithClock overrides the timestamp source. Intended for tests.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// Analyze compares current skills against required ones. Zero required skills
// yields a zero score; it is not an error.
func (a *Analyzer) Analyze(current []taxonomy.Skill, required []taxonomy.Requirement, scope Scope) *Result {
	currentSet := taxonomy.NewSkillSet(current)

	matches := make([]Match, 0)
	gaps := make([]Gap, 0)
	missing := make([]MissingSkill, 0)
	seen := make(map[string]struct{}, len(required))

	for _, req := range required {
		name := taxonomy.Key(req.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		reqLevel := req.Level.Or(taxonomy.LevelIntermediate)
		importance := req.Importance.Or(taxonomy.ImportanceMedium)

		held, ok := currentSet.Lookup(name)
		if !ok {
			missing = append(missing, MissingSkill{
				Skill:         name,
				RequiredLevel: reqLevel,
				Importance:    importance,
				Severity:      SeverityHigh,
			})
			continue
		}

		curLevel := held.Level.Or(taxonomy.LevelBeginner)
		gapSize := reqLevel.Ordinal() - curLevel.Ordinal()
		if gapSize <= 0 {
			matches = append(matches, Match{
				Skill:         name,
				CurrentLevel:  curLevel,
				RequiredLevel: reqLevel,
				MatchScore:    1.0,
			})
			continue
		}

		gaps = append(gaps, Gap{
			Skill:           name,
			CurrentLevel:    curLevel,
			RequiredLevel:   reqLevel,
			GapSize:         gapSize,
			Severity:        a.classify(gapSize),
			DevelopmentTime: a.developmentTime(curLevel, gapSize),
			Importance:      importance,
		})
	}

	totalRequired := len(required)
	overall := 0.0
	if totalRequired > 0 {
		overall = round3(float64(len(matches)) / float64(totalRequired))
	}

	result := &Result{
		Scope:         scope,
		OverallScore:  overall,
		Matches:       matches,
		Gaps:          gaps,
		MissingSkills: missing,
		Summary: Summary{
			TotalRequired:     totalRequired,
			Matched:           len(matches),
			GapSkills:         len(gaps) + len(missing),
			CompletionPercent: math.Round(overall*1000) / 10,
		},
		Recommendations: a.recommend(gaps, missing, scope),
		Timeline:        a.timeline(gaps, missing),
		AnalyzedAt:      a.now(),
	}

	a.logger.Debug("skill gaps analyzed",
		zap.String("scope", string(scope)),
		zap.Float64("overall_score", overall),
		zap.Int("gaps", len(gaps)),
		zap.Int("missing", len(missing)),
	)

	return result
}

// classify maps gap size to severity. Gap size is always positive here;
// non-positive gaps are recorded as matches before classification.
func (a *Analyzer) classify(gapSize int) Severity {
	switch {
	case gapSize >= a.cfg.HighGapSize:
		return SeverityHigh
	case gapSize == 1:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func (a *Analyzer) developmentTime(current taxonomy.Level, gapSize int) string {
	if times, ok := a.cfg.DevelopmentTimes[current]; ok {
		if estimate, ok := times[gapSize]; ok {
			return estimate
		}
	}
	return a.cfg.DefaultDevelopmentTime
}

func (a *Analyzer) timeline(gaps []Gap, missing []MissingSkill) Timeline {
	if len(gaps) == 0 && len(missing) == 0 {
		return Timeline{Label: "No development needed"}
	}

	months := 0
	critical := 0

	for _, gap := range gaps {
		if gap.Importance == taxonomy.ImportanceHigh {
			critical++
			months += a.cfg.HighGapMonths
		}
	}
	for _, m := range missing {
		if m.Importance == taxonomy.ImportanceHigh {
			critical++
			months += a.cfg.HighMissingMonths
		}
	}

	others := len(gaps) + len(missing) - critical
	months += others * a.cfg.OtherSkillMonths

	label := "Extended (12+ months)"
	switch {
	case months <= a.cfg.ShortTermMonths:
		label = "Short-term (1-3 months)"
	case months <= a.cfg.MediumTermMonths:
		label = "Medium-term (3-6 months)"
	case months <= a.cfg.LongTermMonths:
		label = "Long-term (6-12 months)"
	}

	return Timeline{Label: label, EstimatedMonths: months, CriticalSkills: critical}
}

func (a *Analyzer) recommend(gaps []Gap, missing []MissingSkill, scope Scope) []string {
	recommendations := make([]string, 0, 8)

	highPriority := false
	for _, gap := range gaps {
		if gap.Importance == taxonomy.ImportanceHigh {
			highPriority = true
			break
		}
	}
	if !highPriority {
		for _, m := range missing {
			if m.Importance == taxonomy.ImportanceHigh {
				highPriority = true
				break
			}
		}
	}
	if highPriority {
		recommendations = append(recommendations, "Focus on high-priority skills first")
	}

	for _, gap := range top(gaps, 3) {
		recommendations = append(recommendations,
			fmt.Sprintf("Develop %s from %s to %s", gap.Skill, gap.CurrentLevel, gap.RequiredLevel))
	}
	for _, m := range top(missing, 3) {
		recommendations = append(recommendations,
			fmt.Sprintf("Acquire %s at %s level", m.Skill, m.RequiredLevel))
	}

	switch scope {
	case ScopeIndividual:
		recommendations = append(recommendations,
			"Seek mentorship from senior team members",
			"Participate in relevant training programs",
			"Practice skills through hands-on projects",
		)
	case ScopeTeam:
		recommendations = append(recommendations,
			"Implement cross-training programs",
			"Consider hiring for critical skill gaps",
			"Establish knowledge sharing sessions",
		)
	}

	return recommendations
}

func top[T any](items []T, n int) []T {
	if len(items) < n {
		return items
	}
	return items[:n]
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
