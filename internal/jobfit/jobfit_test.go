package jobfit

import (
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/talentforge/talentforge/internal/taxonomy"
)

func newTestScorer() *Scorer {
	return New(DefaultConfig(), zap.NewNop())
}

func TestEvaluateSingleHighImportanceRequirement(t *testing.T) {
	scorer := newTestScorer()

	result := scorer.Evaluate(
		[]taxonomy.Skill{{Name: "python", Level: taxonomy.LevelAdvanced, Years: 5}},
		[]taxonomy.Requirement{{Name: "python", Level: taxonomy.LevelIntermediate, Importance: taxonomy.ImportanceHigh}},
		nil,
		JobLevelMid,
	)

	if result.FitScore != 0.48 {
		t.Fatalf("fit score = %v, want 0.48", result.FitScore)
	}
	if len(result.SkillMatches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(result.SkillMatches))
	}

	match := result.SkillMatches[0]
	if match.LevelScore != 1.0 {
		t.Fatalf("level score = %v, want 1.0", match.LevelScore)
	}
	if match.ExperienceBonus != 0.2 {
		t.Fatalf("experience bonus = %v, want 0.2", match.ExperienceBonus)
	}
	if math.Abs(match.Contribution-0.48) > 1e-9 {
		t.Fatalf("contribution = %v, want 0.48", match.Contribution)
	}
}

func TestEvaluateEmptyRequirements(t *testing.T) {
	scorer := newTestScorer()

	result := scorer.Evaluate(
		[]taxonomy.Skill{{Name: "python", Level: taxonomy.LevelExpert}},
		nil,
		nil,
		JobLevelMid,
	)

	if result.FitScore != 0 {
		t.Fatalf("fit score = %v, want 0", result.FitScore)
	}
	if len(result.SkillMatches) != 0 {
		t.Fatalf("expected no matches, got %d", len(result.SkillMatches))
	}
	if len(result.MissingSkills) != 0 {
		t.Fatalf("expected no missing skills, got %d", len(result.MissingSkills))
	}
}

func TestEvaluateMissingSkillContributesNothing(t *testing.T) {
	scorer := newTestScorer()

	result := scorer.Evaluate(
		[]taxonomy.Skill{{Name: "python", Level: taxonomy.LevelAdvanced}},
		[]taxonomy.Requirement{
			{Name: "kubernetes", Level: taxonomy.LevelIntermediate, Importance: taxonomy.ImportanceHigh},
		},
		nil,
		JobLevelMid,
	)

	if result.FitScore != 0 {
		t.Fatalf("fit score = %v, want 0", result.FitScore)
	}
	if len(result.MissingSkills) != 1 {
		t.Fatalf("expected 1 missing skill, got %d", len(result.MissingSkills))
	}
	if result.MissingSkills[0].Skill != "kubernetes" {
		t.Fatalf("unexpected missing skill: %s", result.MissingSkills[0].Skill)
	}
}

func TestLevelMatchIsMonotonicInGap(t *testing.T) {
	scorer := newTestScorer()

	cases := []struct {
		candidate taxonomy.Level
		required  taxonomy.Level
		want      float64
	}{
		{taxonomy.LevelExpert, taxonomy.LevelIntermediate, 1.0},
		{taxonomy.LevelIntermediate, taxonomy.LevelIntermediate, 1.0},
		{taxonomy.LevelIntermediate, taxonomy.LevelAdvanced, 0.7},
		{taxonomy.LevelBeginner, taxonomy.LevelAdvanced, 0.3},
		{taxonomy.LevelBeginner, taxonomy.LevelExpert, 0.3},
	}

	for _, tc := range cases {
		if got := scorer.levelMatch(tc.candidate, tc.required); got != tc.want {
			t.Fatalf("levelMatch(%s, %s) = %v, want %v", tc.candidate, tc.required, got, tc.want)
		}
	}
}

func TestFitScoreStaysInUnitInterval(t *testing.T) {
	scorer := newTestScorer()

	requirements := []taxonomy.Requirement{
		{Name: "go", Level: taxonomy.LevelBeginner, Importance: taxonomy.ImportanceHigh},
		{Name: "sql", Level: taxonomy.LevelBeginner, Importance: taxonomy.ImportanceHigh},
	}
	candidate := []taxonomy.Skill{
		{Name: "go", Level: taxonomy.LevelExpert, Years: 30},
		{Name: "sql", Level: taxonomy.LevelExpert, Years: 30},
	}

	result := scorer.Evaluate(candidate, requirements, nil, JobLevelSenior)
	if result.FitScore < 0 || result.FitScore > 1 {
		t.Fatalf("fit score %v outside [0, 1]", result.FitScore)
	}
}

func TestEvaluateDefaultsUnknownLevelAndImportance(t *testing.T) {
	scorer := newTestScorer()

	result := scorer.Evaluate(
		[]taxonomy.Skill{{Name: "go", Level: "wizard"}},
		[]taxonomy.Requirement{{Name: "go", Level: "guru", Importance: "critical"}},
		nil,
		JobLevelMid,
	)

	if len(result.SkillMatches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(result.SkillMatches))
	}

	match := result.SkillMatches[0]
	if match.CandidateLevel != taxonomy.LevelIntermediate || match.RequiredLevel != taxonomy.LevelIntermediate {
		t.Fatalf("unknown levels resolved to %s/%s, want intermediate/intermediate",
			match.CandidateLevel, match.RequiredLevel)
	}
	if match.Importance != taxonomy.ImportanceMedium {
		t.Fatalf("unknown importance resolved to %s, want medium", match.Importance)
	}
}

func TestAnalyzeExperienceBuckets(t *testing.T) {
	scorer := newTestScorer()

	cases := []struct {
		name  string
		years float64
		level JobLevel
		want  string
	}{
		{"under", 1, JobLevelSenior, "Underqualified for experience level"},
		{"appropriate", 6, JobLevelSenior, "Appropriate experience level"},
		{"over", 10, JobLevelSenior, "Overqualified for experience level"},
	}

	for _, tc := range cases {
		analysis := scorer.analyzeExperience([]taxonomy.Experience{{Years: tc.years}}, tc.level)
		if analysis.Assessment != tc.want {
			t.Fatalf("%s: assessment = %q, want %q", tc.name, analysis.Assessment, tc.want)
		}
		if analysis.TotalYears != tc.years {
			t.Fatalf("%s: total years = %v, want %v", tc.name, analysis.TotalYears, tc.years)
		}
	}

	empty := scorer.analyzeExperience(nil, JobLevelMid)
	if empty.Assessment != "No experience listed" {
		t.Fatalf("unexpected assessment for empty history: %q", empty.Assessment)
	}
}

func TestOverallAssessmentTiers(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.95, "Excellent Match"},
		{0.85, "Strong Match"},
		{0.75, "Good Match"},
		{0.65, "Moderate Match"},
		{0.55, "Weak Match"},
		{0.2, "Poor Match"},
	}

	for _, tc := range cases {
		if got := assess(tc.score); got != tc.want {
			t.Fatalf("assess(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestRecommendationsFlagCriticalMissingSkills(t *testing.T) {
	scorer := newTestScorer()

	result := scorer.Evaluate(
		nil,
		[]taxonomy.Requirement{
			{Name: "kubernetes", Importance: taxonomy.ImportanceHigh},
			{Name: "terraform", Importance: taxonomy.ImportanceLow},
		},
		nil,
		JobLevelMid,
	)

	found := false
	for _, rec := range result.Recommendations {
		if rec == "Critical missing skills: kubernetes" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected critical missing skill callout, got %v", result.Recommendations)
	}
}
