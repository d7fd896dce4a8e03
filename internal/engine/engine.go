// Package engine exposes the four scorers behind a single action-dispatched
// entry point with fail-soft error semantics.
package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/talentforge/talentforge/internal/compliance"
	"github.com/talentforge/talentforge/internal/jobfit"
	"github.com/talentforge/talentforge/internal/skillgap"
	"github.com/talentforge/talentforge/internal/taxonomy"
	"github.com/talentforge/talentforge/internal/training"
)

// Action identifies one engine operation.
type Action string

const (
	ActionMatchJob        Action = "match_job"
	ActionAnalyzeGaps     Action = "analyze_gaps"
	ActionCheckCompliance Action = "check_compliance"
	ActionBuildPlan       Action = "build_plan"
)

// Actions lists every known action in dispatch order.
func Actions() []Action {
	return []Action{ActionMatchJob, ActionAnalyzeGaps, ActionCheckCompliance, ActionBuildPlan}
}

// ParseAction resolves a string into a known action.
func ParseAction(s string) (Action, error) {
	for _, action := range Actions() {
		if string(action) == s {
			return action, nil
		}
	}
	return "", fmt.Errorf("unknown action: %s", s)
}

// MatchJobRequest carries the inputs of a job fit evaluation.
type MatchJobRequest struct {
	CandidateSkills []taxonomy.Skill       `json:"candidate_skills" mapstructure:"candidate_skills"`
	Requirements    []taxonomy.Requirement `json:"job_requirements" mapstructure:"job_requirements"`
	Experience      []taxonomy.Experience  `json:"candidate_experience,omitempty" mapstructure:"candidate_experience"`
	JobLevel        jobfit.JobLevel        `json:"job_level,omitempty" mapstructure:"job_level"`
}

// AnalyzeGapsRequest carries the inputs of a skill gap analysis.
type AnalyzeGapsRequest struct {
	CurrentSkills  []taxonomy.Skill       `json:"current_skills" mapstructure:"current_skills"`
	RequiredSkills []taxonomy.Requirement `json:"required_skills" mapstructure:"required_skills"`
	Scope          skillgap.Scope         `json:"analysis_type,omitempty" mapstructure:"analysis_type"`
}

// BuildPlanRequest carries the inputs of a training plan run.
type BuildPlanRequest struct {
	Gaps        []training.SkillGap  `json:"skill_gaps" mapstructure:"skill_gaps"`
	CareerGoals []string             `json:"career_goals,omitempty" mapstructure:"career_goals"`
	Constraints training.Constraints `json:"constraints,omitempty" mapstructure:"constraints"`
}

// Request is a tagged union: Action names the operation and exactly one
// payload field must be populated for it.
type Request struct {
	Action          Action              `json:"action"`
	MatchJob        *MatchJobRequest    `json:"match_job,omitempty"`
	AnalyzeGaps     *AnalyzeGapsRequest `json:"analyze_gaps,omitempty"`
	CheckCompliance *compliance.Request `json:"check_compliance,omitempty"`
	BuildPlan       *BuildPlanRequest   `json:"build_plan,omitempty"`
}

// Response carries exactly one populated result field, or Error when the
// operation could not compute.
type Response struct {
	Action       Action             `json:"action"`
	JobFit       *jobfit.Result     `json:"job_fit,omitempty"`
	SkillGaps    *skillgap.Result   `json:"skill_gaps,omitempty"`
	Compliance   *compliance.Result `json:"compliance,omitempty"`
	TrainingPlan *training.Plan     `json:"training_plan,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// Options configures an Engine. Zero-value fields fall back to the built-in
// defaults.
type Options struct {
	JobFit   *jobfit.Config
	SkillGap *skillgap.Config
	Training *training.Config
	Rulebook *compliance.Rulebook
	Catalog  *training.Catalog
	Logger   *zap.Logger
}

type handler func(*Request) (*Response, error)

// Engine bundles the configured scorers behind an action dispatch table. It
// holds no mutable state after construction and is safe for concurrent use.
type Engine struct {
	scorer   *jobfit.Scorer
	analyzer *skillgap.Analyzer
	checker  *compliance.Checker
	planner  *training.Planner
	logger   *zap.Logger
	handlers map[Action]handler
}

// New assembles an engine from the provided options.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	jobfitCfg := jobfit.DefaultConfig()
	if opts.JobFit != nil {
		jobfitCfg = *opts.JobFit
	}
	skillgapCfg := skillgap.DefaultConfig()
	if opts.SkillGap != nil {
		skillgapCfg = *opts.SkillGap
	}
	trainingCfg := training.DefaultConfig()
	if opts.Training != nil {
		trainingCfg = *opts.Training
	}

	e := &Engine{
		scorer:   jobfit.New(jobfitCfg, logger),
		analyzer: skillgap.New(skillgapCfg, logger),
		checker:  compliance.New(opts.Rulebook, logger),
		planner:  training.New(opts.Catalog, trainingCfg, logger),
		logger:   logger,
	}

	e.handlers = map[Action]handler{
		ActionMatchJob:        e.matchJob,
		ActionAnalyzeGaps:     e.analyzeGaps,
		ActionCheckCompliance: e.checkCompliance,
		ActionBuildPlan:       e.buildPlan,
	}

	return e
}

// Do dispatches the request to its handler. Handler failures, such as a
// missing required field, come back as a Response with Error set rather than
// as an error: callers always receive a result object. Do itself errors only
// on a nil request, an unknown action or a canceled context.
func (e *Engine) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h, ok := e.handlers[req.Action]
	if !ok {
		return nil, fmt.Errorf("unknown action: %s", req.Action)
	}

	resp, err := h(req)
	if err != nil {
		e.logger.Warn("action failed",
			zap.String("action", string(req.Action)),
			zap.Error(err),
		)
		return &Response{Action: req.Action, Error: err.Error()}, nil
	}

	return resp, nil
}

func (e *Engine) matchJob(req *Request) (*Response, error) {
	payload := req.MatchJob
	if payload == nil {
		return nil, fmt.Errorf("match_job payload is required")
	}

	result := e.scorer.Evaluate(payload.CandidateSkills, payload.Requirements, payload.Experience, payload.JobLevel)
	return &Response{Action: req.Action, JobFit: result}, nil
}

func (e *Engine) analyzeGaps(req *Request) (*Response, error) {
	payload := req.AnalyzeGaps
	if payload == nil {
		return nil, fmt.Errorf("analyze_gaps payload is required")
	}

	scope := payload.Scope
	if scope == "" {
		scope = skillgap.ScopeIndividual
	}

	result := e.analyzer.Analyze(payload.CurrentSkills, payload.RequiredSkills, scope)
	return &Response{Action: req.Action, SkillGaps: result}, nil
}

func (e *Engine) checkCompliance(req *Request) (*Response, error) {
	payload := req.CheckCompliance
	if payload == nil {
		return nil, fmt.Errorf("check_compliance payload is required")
	}

	result, err := e.checker.Check(*payload)
	if err != nil {
		return nil, err
	}

	return &Response{Action: req.Action, Compliance: result}, nil
}

func (e *Engine) buildPlan(req *Request) (*Response, error) {
	payload := req.BuildPlan
	if payload == nil {
		return nil, fmt.Errorf("build_plan payload is required")
	}

	plan := e.planner.Plan(payload.Gaps, payload.CareerGoals, payload.Constraints)
	return &Response{Action: req.Action, TrainingPlan: plan}, nil
}
