// Package training selects courses for skill gaps under budget constraints
// and assembles a phased learning path.
package training

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentforge/talentforge/internal/skillgap"
	"github.com/talentforge/talentforge/internal/taxonomy"
)

// SkillGap is the minimal gap record the planner consumes.
type SkillGap struct {
	Skill    string            `json:"skill" mapstructure:"skill"`
	Severity skillgap.Severity `json:"gap_severity" mapstructure:"gap_severity"`
}

// FromAnalysis flattens a gap analysis into planner input, gaps first and
// missing skills after.
func FromAnalysis(result *skillgap.Result) []SkillGap {
	if result == nil {
		return nil
	}
	gaps := make([]SkillGap, 0, len(result.Gaps)+len(result.MissingSkills))
	for _, gap := range result.Gaps {
		gaps = append(gaps, SkillGap{Skill: gap.Skill, Severity: gap.Severity})
	}
	for _, missing := range result.MissingSkills {
		gaps = append(gaps, SkillGap{Skill: missing.Skill, Severity: missing.Severity})
	}
	return gaps
}

// Constraints bound a planning run. A Budget of zero or less means
// unconstrained.
type Constraints struct {
	Budget             float64  `json:"max_budget,omitempty" mapstructure:"max_budget"`
	PreferredProviders []string `json:"preferred_providers,omitempty" mapstructure:"preferred_providers"`
}

// Config holds planner constants. Defaults carry unvalidated placeholder
// values and stay overridable.
type Config struct {
	HoursPerWeek      float64 `yaml:"hours-per-week" mapstructure:"hours-per-week"`
	PlaceholderCost   float64 `yaml:"placeholder-cost" mapstructure:"placeholder-cost"`
	PlaceholderHours  float64 `yaml:"placeholder-hours" mapstructure:"placeholder-hours"`
	PlaceholderRating float64 `yaml:"placeholder-rating" mapstructure:"placeholder-rating"`
	AlignmentScore    float64 `yaml:"alignment-score" mapstructure:"alignment-score"`
}

// DefaultConfig returns the built-in planner constants.
func DefaultConfig() Config {
	return Config{
		HoursPerWeek:      10,
		PlaceholderCost:   50,
		PlaceholderHours:  20,
		PlaceholderRating: 4.0,
		AlignmentScore:    0.85,
	}
}

// Phase is one stage of a learning path.
type Phase struct {
	Title      string   `json:"title"`
	Duration   string   `json:"duration"`
	Courses    []Course `json:"courses"`
	Objectives []string `json:"objectives"`
}

// CareerAlignment relates the path to the learner's stated goals.
type CareerAlignment struct {
	Goals            []string `json:"goals"`
	AlignmentScore   float64  `json:"alignment_score"`
	KeySkillsCovered []string `json:"key_skills_covered"`
}

// LearningPath is the phased grouping of selected courses.
type LearningPath struct {
	Phases          []Phase         `json:"phases"`
	CareerAlignment CareerAlignment `json:"career_alignment"`
}

// CostAnalysis summarizes spend against the budget.
type CostAnalysis struct {
	TotalCost         float64 `json:"total_cost"`
	CostPerSkill      float64 `json:"cost_per_skill"`
	BudgetUtilization float64 `json:"budget_utilization"`
}

// TimeAnalysis summarizes the time commitment.
type TimeAnalysis struct {
	TotalHours     float64 `json:"total_hours"`
	EstimatedWeeks float64 `json:"estimated_weeks"`
	HoursPerSkill  float64 `json:"time_per_skill"`
}

// Plan is the full outcome of a planning run.
type Plan struct {
	Courses         []Course     `json:"courses"`
	Path            LearningPath `json:"learning_path"`
	Cost            CostAnalysis `json:"cost_analysis"`
	Time            TimeAnalysis `json:"time_analysis"`
	Recommendations []string     `json:"recommendations"`
	GeneratedAt     time.Time    `json:"generated_at"`
}

// Planner builds training plans from a catalog. It holds no mutable state and
// is safe for concurrent use.
type Planner struct {
	catalog *Catalog
	cfg     Config
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a planner. A nil catalog means the built-in one.
func New(catalog *Catalog, cfg Config, logger *zap.Logger) *Planner {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{catalog: catalog, cfg: cfg, logger: logger, now: time.Now}
}

// WithClock overrides the timestamp source. Intended for tests.
func (p *Planner) WithClock(now func() time.Time) *Planner {
	p.now = now
	return p
}

// Plan selects courses for the given gaps and assembles the learning path.
// When the naive selection exceeds a finite budget, courses are reselected
// greedily by cost-effectiveness; the returned set never costs more than the
// budget.
func (p *Planner) Plan(gaps []SkillGap, goals []string, constraints Constraints) *Plan {
	courses := make([]Course, 0, len(gaps))
	for _, gap := range gaps {
		courses = append(courses, p.coursesFor(gap)...)
	}

	if len(constraints.PreferredProviders) > 0 {
		preferProviders(courses, constraints.PreferredProviders)
	}

	totalCost, totalHours := totals(courses)

	if constraints.Budget > 0 && totalCost > constraints.Budget {
		courses = optimizeForBudget(courses, constraints.Budget)
		totalCost, totalHours = totals(courses)
	}

	plan := &Plan{
		Courses:         courses,
		Path:            p.buildPath(courses, goals),
		Cost:            p.analyzeCost(totalCost, len(gaps), constraints.Budget),
		Time:            p.analyzeTime(totalHours, len(gaps)),
		Recommendations: recommend(courses, goals),
		GeneratedAt:     p.now(),
	}

	p.logger.Debug("training plan generated",
		zap.Int("gaps", len(gaps)),
		zap.Int("courses", len(courses)),
		zap.Float64("total_cost", totalCost),
		zap.Float64("budget", constraints.Budget),
	)

	return plan
}

// coursesFor picks catalog entries for one gap based on its severity. Skills
// absent from the catalog get a generic placeholder course.
func (p *Planner) coursesFor(gap SkillGap) []Course {
	entries := p.catalog.ForSkill(gap.Skill)
	if len(entries) == 0 {
		return []Course{p.placeholder(gap.Skill)}
	}

	switch gap.Severity {
	case skillgap.SeverityHigh:
		selected := make([]Course, 0, len(entries))
		for _, course := range entries {
			if course.Level == taxonomy.LevelIntermediate || course.Level == taxonomy.LevelAdvanced {
				selected = append(selected, course)
			}
		}
		return selected
	case skillgap.SeverityLow:
		selected := make([]Course, 0, len(entries))
		for _, course := range entries {
			if course.Level == taxonomy.LevelBeginner {
				selected = append(selected, course)
			}
		}
		return selected
	default:
		if len(entries) > 2 {
			return entries[:2]
		}
		return entries
	}
}

func (p *Planner) placeholder(skill string) Course {
	return Course{
		ID:       fmt.Sprintf("GEN-%s", uuid.NewString()[:8]),
		Title:    fmt.Sprintf("%s Fundamentals", skill),
		Provider: "General Provider",
		Duration: "4 weeks",
		Hours:    p.cfg.PlaceholderHours,
		Cost:     p.cfg.PlaceholderCost,
		Level:    taxonomy.LevelBeginner,
		Rating:   p.cfg.PlaceholderRating,
	}
}

// optimizeForBudget reselects courses greedily by rating/cost ratio, stopping
// at the first course that would breach the budget. This approximates but
// does not solve the knapsack problem: a large low-ratio course can shut out
// a better combination.
func optimizeForBudget(courses []Course, budget float64) []Course {
	ranked := make([]Course, len(courses))
	copy(ranked, courses)

	sort.SliceStable(ranked, func(i, j int) bool {
		return effectiveness(ranked[i]) > effectiveness(ranked[j])
	})

	selected := make([]Course, 0, len(ranked))
	spent := 0.0
	for _, course := range ranked {
		if spent+course.Cost > budget {
			break
		}
		selected = append(selected, course)
		spent += course.Cost
	}

	return selected
}

func effectiveness(course Course) float64 {
	cost := course.Cost
	if cost < 1 {
		cost = 1
	}
	return course.Rating / cost
}

// preferProviders stably moves courses from preferred providers to the front.
func preferProviders(courses []Course, providers []string) {
	preferred := make(map[string]struct{}, len(providers))
	for _, provider := range providers {
		preferred[strings.ToLower(strings.TrimSpace(provider))] = struct{}{}
	}

	sort.SliceStable(courses, func(i, j int) bool {
		_, pi := preferred[strings.ToLower(courses[i].Provider)]
		_, pj := preferred[strings.ToLower(courses[j].Provider)]
		return pi && !pj
	})
}

func (p *Planner) buildPath(courses []Course, goals []string) LearningPath {
	byLevel := func(level taxonomy.Level) []Course {
		matched := make([]Course, 0)
		for _, course := range courses {
			if course.Level == level {
				matched = append(matched, course)
			}
		}
		return matched
	}

	keySkills := make([]string, 0, 3)
	for _, course := range courses {
		if len(keySkills) == 3 {
			break
		}
		if fields := strings.Fields(course.Title); len(fields) > 0 {
			keySkills = append(keySkills, fields[0])
		}
	}

	return LearningPath{
		Phases: []Phase{
			{
				Title:    "Foundation Building",
				Duration: "4-6 weeks",
				Courses:  byLevel(taxonomy.LevelBeginner),
				Objectives: []string{
					"Build fundamental knowledge",
					"Establish learning habits",
				},
			},
			{
				Title:    "Skill Development",
				Duration: "6-8 weeks",
				Courses:  byLevel(taxonomy.LevelIntermediate),
				Objectives: []string{
					"Develop practical skills",
					"Apply knowledge to projects",
				},
			},
			{
				Title:    "Advanced Application",
				Duration: "8-12 weeks",
				Courses:  byLevel(taxonomy.LevelAdvanced),
				Objectives: []string{
					"Master advanced concepts",
					"Prepare for career advancement",
				},
			},
		},
		CareerAlignment: CareerAlignment{
			Goals:            goals,
			AlignmentScore:   p.cfg.AlignmentScore,
			KeySkillsCovered: keySkills,
		},
	}
}

func (p *Planner) analyzeCost(totalCost float64, gapCount int, budget float64) CostAnalysis {
	analysis := CostAnalysis{TotalCost: totalCost}
	if gapCount > 0 {
		analysis.CostPerSkill = totalCost / float64(gapCount)
	}
	if budget > 0 {
		analysis.BudgetUtilization = totalCost / budget * 100
	}
	return analysis
}

func (p *Planner) analyzeTime(totalHours float64, gapCount int) TimeAnalysis {
	analysis := TimeAnalysis{
		TotalHours:     totalHours,
		EstimatedWeeks: totalHours / p.cfg.HoursPerWeek,
	}
	if gapCount > 0 {
		analysis.HoursPerSkill = totalHours / float64(gapCount)
	}
	return analysis
}

func totals(courses []Course) (cost, hours float64) {
	for _, course := range courses {
		cost += course.Cost
		hours += course.Hours
	}
	return cost, hours
}

func recommend(courses []Course, goals []string) []string {
	recommendations := make([]string, 0, 6)

	if len(courses) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Start with %s to build foundation", courses[0].Title))

		if len(courses) > 3 {
			recommendations = append(recommendations,
				"Consider breaking training into smaller chunks for better retention")
		}

		totalCost, _ := totals(courses)
		if totalCost > 1000 {
			recommendations = append(recommendations,
				"Explore company training budget or reimbursement options")
		}
	}

	if len(goals) > 0 {
		recommendations = append(recommendations,
			"Schedule regular check-ins with manager to align training with career goals")
	}

	recommendations = append(recommendations,
		"Set up a study schedule with dedicated time blocks",
		"Join relevant professional communities for networking",
		"Document learning progress for future reference",
	)

	return recommendations
}
