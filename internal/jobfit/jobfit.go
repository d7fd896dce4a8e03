// Package jobfit scores how well a candidate's skills satisfy a job's
// requirements.
package jobfit

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/talentforge/talentforge/internal/taxonomy"
)

// JobLevel is the seniority tier a position targets.
type JobLevel string

const (
	JobLevelEntry     JobLevel = "entry"
	JobLevelMid       JobLevel = "mid"
	JobLevelSenior    JobLevel = "senior"
	JobLevelLead      JobLevel = "lead"
	JobLevelExecutive JobLevel = "executive"
)

// YearRange bounds the total years of experience expected for a job level.
type YearRange struct {
	Min float64 `yaml:"min" mapstructure:"min"`
	Max float64 `yaml:"max" mapstructure:"max"`
}

// Config holds the scoring constants. The defaults carry over unvalidated
// placeholder values, so every one of them is overridable.
type Config struct {
	Weights taxonomy.Weights `yaml:"weights" mapstructure:"weights"`

	// Level-match scores by ordinal distance: at-or-above, exactly one
	// level below, further below.
	FullMatchScore float64 `yaml:"full-match-score" mapstructure:"full-match-score"`
	NearMatchScore float64 `yaml:"near-match-score" mapstructure:"near-match-score"`
	FarMatchScore  float64 `yaml:"far-match-score" mapstructure:"far-match-score"`

	// Experience bonus is min(years/BonusYears, BonusCap).
	BonusYears float64 `yaml:"bonus-years" mapstructure:"bonus-years"`
	BonusCap   float64 `yaml:"bonus-cap" mapstructure:"bonus-cap"`

	ExperienceRanges map[JobLevel]YearRange `yaml:"experience-ranges" mapstructure:"experience-ranges"`
}

// DefaultConfig returns the built-in scoring constants.
func DefaultConfig() Config {
	return Config{
		Weights:        taxonomy.DefaultWeights(),
		FullMatchScore: 1.0,
		NearMatchScore: 0.7,
		FarMatchScore:  0.3,
		BonusYears:     5,
		BonusCap:       0.2,
		ExperienceRanges: map[JobLevel]YearRange{
			JobLevelEntry:     {Min: 0, Max: 2},
			JobLevelMid:       {Min: 2, Max: 5},
			JobLevelSenior:    {Min: 5, Max: 8},
			JobLevelLead:      {Min: 8, Max: 12},
			JobLevelExecutive: {Min: 12, Max: 20},
		},
	}
}

// SkillMatch records how one requirement was satisfied.
type SkillMatch struct {
	Skill           string              `json:"skill"`
	RequiredLevel   taxonomy.Level      `json:"required_level"`
	CandidateLevel  taxonomy.Level      `json:"candidate_level"`
	LevelScore      float64             `json:"level_score"`
	ExperienceBonus float64             `json:"experience_bonus"`
	MatchScore      float64             `json:"match_score"`
	Importance      taxonomy.Importance `json:"importance"`
	Contribution    float64             `json:"contribution"`
}

// MissingSkill records a requirement the candidate does not cover at all.
type MissingSkill struct {
	Skill         string              `json:"skill"`
	RequiredLevel taxonomy.Level      `json:"required_level"`
	Importance    taxonomy.Importance `json:"importance"`
}

// ExperienceAnalysis buckets total years of experience against the target
// job level.
type ExperienceAnalysis struct {
	TotalYears       float64 `json:"years_total"`
	RelevantYears    float64 `json:"relevant_experience"`
	Assessment       string  `json:"assessment"`
	LevelAppropriate bool    `json:"level_appropriate"`
}

// Result is the full outcome of a fit evaluation.
type Result struct {
	FitScore           float64            `json:"fit_score"`
	SkillMatches       []SkillMatch       `json:"skill_matches"`
	MissingSkills      []MissingSkill     `json:"missing_skills"`
	ExperienceAnalysis ExperienceAnalysis `json:"experience_analysis"`
	OverallAssessment  string             `json:"overall_assessment"`
	Recommendations    []string           `json:"recommendations"`
	MatchedAt          time.Time          `json:"matched_at"`
}

// Scorer evaluates candidates against job requirements. It holds no mutable
// state and is safe for concurrent use.
type Scorer struct {
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// New creates a scorer with the provided config.
func New(cfg Config, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{cfg: cfg, logger: logger, now: time.Now}
}

// WithClock overrides the timestamp source. Intended for tests.
func (s *Scorer) WithClock(now func() time.Time) *Scorer {
	s.now = now
	return s
}

// Evaluate compares candidate skills against job requirements and produces a
// fit score in [0, 1]. An empty requirement list yields score 0 with empty
// match lists; it is not an error.
func (s *Scorer) Evaluate(candidate []taxonomy.Skill, requirements []taxonomy.Requirement, experience []taxonomy.Experience, level JobLevel) *Result {
	skills := taxonomy.NewSkillSet(candidate)

	matches := make([]SkillMatch, 0, len(requirements))
	missing := make([]MissingSkill, 0)
	total := 0.0

	for _, req := range requirements {
		name := taxonomy.Key(req.Name)
		reqLevel := req.Level.Or(taxonomy.LevelIntermediate)
		importance := req.Importance.Or(taxonomy.ImportanceMedium)

		skill, ok := skills.Lookup(req.Name)
		if !ok {
			missing = append(missing, MissingSkill{
				Skill:         name,
				RequiredLevel: reqLevel,
				Importance:    importance,
			})
			continue
		}

		candLevel := skill.Level.Or(taxonomy.LevelIntermediate)
		levelScore := s.levelMatch(candLevel, reqLevel)
		bonus := math.Min(skill.Years/s.cfg.BonusYears, s.cfg.BonusCap)
		matchScore := levelScore + bonus
		contribution := matchScore * s.cfg.Weights.For(importance)
		total += contribution

		matches = append(matches, SkillMatch{
			Skill:           name,
			RequiredLevel:   reqLevel,
			CandidateLevel:  candLevel,
			LevelScore:      levelScore,
			ExperienceBonus: bonus,
			MatchScore:      matchScore,
			Importance:      importance,
			Contribution:    contribution,
		})
	}

	fitScore := 0.0
	if len(requirements) > 0 {
		fitScore = round3(total / float64(len(requirements)))
	}

	result := &Result{
		FitScore:           fitScore,
		SkillMatches:       matches,
		MissingSkills:      missing,
		ExperienceAnalysis: s.analyzeExperience(experience, level),
		OverallAssessment:  assess(fitScore),
		Recommendations:    s.recommend(matches, missing, fitScore, level),
		MatchedAt:          s.now(),
	}

	s.logger.Debug("job fit evaluated",
		zap.Float64("fit_score", result.FitScore),
		zap.Int("matched", len(matches)),
		zap.Int("missing", len(missing)),
		zap.String("job_level", string(level)),
	)

	return result
}

func (s *Scorer) levelMatch(candidate, required taxonomy.Level) float64 {
	switch gap := required.Ordinal() - candidate.Ordinal(); {
	case gap <= 0:
		return s.cfg.FullMatchScore
	case gap == 1:
		return s.cfg.NearMatchScore
	default:
		return s.cfg.FarMatchScore
	}
}

func (s *Scorer) analyzeExperience(experience []taxonomy.Experience, level JobLevel) ExperienceAnalysis {
	if len(experience) == 0 {
		return ExperienceAnalysis{Assessment: "No experience listed"}
	}

	totalYears := 0.0
	for _, exp := range experience {
		totalYears += exp.Years
	}

	bounds, ok := s.cfg.ExperienceRanges[level]
	if !ok {
		bounds = YearRange{Min: 0, Max: 5}
	}

	assessment := "Appropriate experience level"
	switch {
	case totalYears < bounds.Min:
		assessment = "Underqualified for experience level"
	case totalYears > bounds.Max:
		assessment = "Overqualified for experience level"
	}

	return ExperienceAnalysis{
		TotalYears:       totalYears,
		RelevantYears:    totalYears,
		Assessment:       assessment,
		LevelAppropriate: totalYears >= bounds.Min && totalYears <= bounds.Max,
	}
}

func (s *Scorer) recommend(matches []SkillMatch, missing []MissingSkill, fitScore float64, level JobLevel) []string {
	recommendations := make([]string, 0, 4)

	switch {
	case fitScore >= 0.8:
		recommendations = append(recommendations, "Strong candidate match - recommend for interview")
	case fitScore >= 0.6:
		recommendations = append(recommendations, "Good potential - consider with training plan")
	default:
		recommendations = append(recommendations, "Significant skill gaps - may not be suitable")
	}

	critical := make([]string, 0)
	for _, m := range missing {
		if m.Importance == taxonomy.ImportanceHigh {
			critical = append(critical, m.Skill)
		}
	}
	if len(critical) > 0 {
		recommendations = append(recommendations, fmt.Sprintf("Critical missing skills: %s", strings.Join(critical, ", ")))
	}

	if len(missing) > 0 {
		recommendations = append(recommendations, "Consider targeted training for missing skills")
	}

	if level == JobLevelSenior && fitScore < 0.7 {
		recommendations = append(recommendations, "May need more senior-level experience")
	} else if level == JobLevelEntry && fitScore > 0.9 {
		recommendations = append(recommendations, "Overqualified - consider more senior role")
	}

	return recommendations
}

func assess(fitScore float64) string {
	switch {
	case fitScore >= 0.9:
		return "Excellent Match"
	case fitScore >= 0.8:
		return "Strong Match"
	case fitScore >= 0.7:
		return "Good Match"
	case fitScore >= 0.6:
		return "Moderate Match"
	case fitScore >= 0.5:
		return "Weak Match"
	default:
		return "Poor Match"
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
