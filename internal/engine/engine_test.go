package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/talentforge/talentforge/internal/compliance"
	"github.com/talentforge/talentforge/internal/jobfit"
	"github.com/talentforge/talentforge/internal/skillgap"
	"github.com/talentforge/talentforge/internal/taxonomy"
	"github.com/talentforge/talentforge/internal/training"
)

func TestParseAction(t *testing.T) {
	for _, action := range Actions() {
		parsed, err := ParseAction(string(action))
		if err != nil {
			t.Fatalf("ParseAction(%s): %v", action, err)
		}
		if parsed != action {
			t.Fatalf("ParseAction(%s) = %s", action, parsed)
		}
	}

	if _, err := ParseAction("summarize"); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}

func TestDoRejectsNilRequest(t *testing.T) {
	e := New(Options{})

	if _, err := e.Do(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil request")
	}
}

func TestDoRejectsUnknownAction(t *testing.T) {
	e := New(Options{})

	if _, err := e.Do(context.Background(), &Request{Action: "summarize"}); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}

func TestDoHonorsCanceledContext(t *testing.T) {
	e := New(Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := &Request{Action: ActionMatchJob, MatchJob: &MatchJobRequest{}}
	if _, err := e.Do(ctx, req); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDoMatchJob(t *testing.T) {
	e := New(Options{})

	resp, err := e.Do(context.Background(), &Request{
		Action: ActionMatchJob,
		MatchJob: &MatchJobRequest{
			CandidateSkills: []taxonomy.Skill{{Name: "python", Level: taxonomy.LevelAdvanced, Years: 5}},
			Requirements:    []taxonomy.Requirement{{Name: "python", Level: taxonomy.LevelIntermediate, Importance: taxonomy.ImportanceHigh}},
			JobLevel:        jobfit.JobLevelMid,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.JobFit == nil {
		t.Fatalf("job fit result not populated: %#v", resp)
	}
	if resp.JobFit.FitScore != 0.48 {
		t.Fatalf("fit score = %v, want 0.48", resp.JobFit.FitScore)
	}
	if resp.SkillGaps != nil || resp.Compliance != nil || resp.TrainingPlan != nil {
		t.Fatalf("unrelated result fields populated: %#v", resp)
	}
}

func TestDoAnalyzeGapsDefaultsScope(t *testing.T) {
	e := New(Options{})

	resp, err := e.Do(context.Background(), &Request{
		Action: ActionAnalyzeGaps,
		AnalyzeGaps: &AnalyzeGapsRequest{
			CurrentSkills:  []taxonomy.Skill{{Name: "go", Level: taxonomy.LevelBeginner}},
			RequiredSkills: []taxonomy.Requirement{{Name: "go", Level: taxonomy.LevelAdvanced}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.SkillGaps == nil {
		t.Fatalf("skill gaps result not populated: %#v", resp)
	}
	if resp.SkillGaps.Scope != skillgap.ScopeIndividual {
		t.Fatalf("scope = %s, want individual", resp.SkillGaps.Scope)
	}
	if len(resp.SkillGaps.Gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(resp.SkillGaps.Gaps))
	}
}

func TestDoCheckCompliance(t *testing.T) {
	e := New(Options{})

	resp, err := e.Do(context.Background(), &Request{
		Action: ActionCheckCompliance,
		CheckCompliance: &compliance.Request{
			DocumentType: compliance.DocumentPolicy,
			Content:      "discrimination harassment fmla",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Compliance == nil {
		t.Fatalf("compliance result not populated: %#v", resp)
	}
	if resp.Compliance.Score != 1.0 {
		t.Fatalf("score = %v, want 1.0", resp.Compliance.Score)
	}
}

func TestDoBuildPlan(t *testing.T) {
	e := New(Options{})

	resp, err := e.Do(context.Background(), &Request{
		Action: ActionBuildPlan,
		BuildPlan: &BuildPlanRequest{
			Gaps:        []training.SkillGap{{Skill: "python", Severity: skillgap.SeverityMedium}},
			Constraints: training.Constraints{Budget: 100},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TrainingPlan == nil {
		t.Fatalf("training plan not populated: %#v", resp)
	}
	if resp.TrainingPlan.Cost.TotalCost > 100 {
		t.Fatalf("plan exceeds budget: %v", resp.TrainingPlan.Cost.TotalCost)
	}
}

func TestDoFailSoftOnHandlerError(t *testing.T) {
	e := New(Options{})

	// Missing payload and missing document type both surface via the Error
	// field, never as a Go error.
	cases := []*Request{
		{Action: ActionMatchJob},
		{Action: ActionCheckCompliance, CheckCompliance: &compliance.Request{Content: "x"}},
	}

	for _, req := range cases {
		resp, err := e.Do(context.Background(), req)
		if err != nil {
			t.Fatalf("expected fail-soft response, got error: %v", err)
		}
		if resp.Error == "" {
			t.Fatalf("expected Error set for %s, got %#v", req.Action, resp)
		}
		if resp.Action != req.Action {
			t.Fatalf("response action = %s, want %s", resp.Action, req.Action)
		}
	}
}

func TestDoErrorMessagesNameTheMissingPiece(t *testing.T) {
	e := New(Options{})

	resp, err := e.Do(context.Background(), &Request{Action: ActionBuildPlan})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Error, "build_plan") {
		t.Fatalf("unexpected error message: %q", resp.Error)
	}
}

func TestCustomOptionsReachScorers(t *testing.T) {
	cfg := skillgap.DefaultConfig()
	cfg.HighGapSize = 5

	e := New(Options{SkillGap: &cfg})

	resp, err := e.Do(context.Background(), &Request{
		Action: ActionAnalyzeGaps,
		AnalyzeGaps: &AnalyzeGapsRequest{
			CurrentSkills:  []taxonomy.Skill{{Name: "go", Level: taxonomy.LevelBeginner}},
			RequiredSkills: []taxonomy.Requirement{{Name: "go", Level: taxonomy.LevelExpert}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A three-level gap stays Medium-free under the raised threshold.
	gap := resp.SkillGaps.Gaps[0]
	if gap.Severity == skillgap.SeverityHigh {
		t.Fatalf("raised threshold ignored: %#v", gap)
	}
}
