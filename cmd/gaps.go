package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentforge/talentforge/internal/engine"
	"github.com/talentforge/talentforge/internal/logger"
	"github.com/talentforge/talentforge/internal/skillgap"
	"github.com/talentforge/talentforge/internal/training"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Analyze skill gaps against a target skill set",
	Run: func(cmd *cobra.Command, _ []string) {
		runGaps(cmd)
	},
}

func init() {
	rootCmd.AddCommand(gapsCmd)

	gapsCmd.Flags().StringP("current", "c", "", "file with current skills (json or yaml)")
	gapsCmd.Flags().StringP("required", "r", "", "file with required skills (json or yaml)")
	gapsCmd.Flags().StringP("scope", "s", "individual", "analysis scope (individual, team, role)")
	gapsCmd.Flags().Bool("plan", false, "chain the gaps into a training plan")
	gapsCmd.Flags().Float64P("budget", "b", 0, "budget cap for the chained plan (0 is unconstrained)")

	gapsCmd.MarkFlagRequired("current")
	gapsCmd.MarkFlagRequired("required")
}

func runGaps(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	eng, err := newEngine(config, logger)
	if err != nil {
		logger.Fatal("building the engine", zap.Error(err))
	}

	current, err := loadSkills(cmd.Flag("current").Value.String())
	if err != nil {
		logger.Fatal("loading current skills", zap.Error(err))
	}

	required, err := loadRequirements(cmd.Flag("required").Value.String())
	if err != nil {
		logger.Fatal("loading required skills", zap.Error(err))
	}

	ctx := context.Background()

	resp, err := eng.Do(ctx, &engine.Request{
		Action: engine.ActionAnalyzeGaps,
		AnalyzeGaps: &engine.AnalyzeGapsRequest{
			CurrentSkills:  current,
			RequiredSkills: required,
			Scope:          skillgap.Scope(cmd.Flag("scope").Value.String()),
		},
	})
	if err != nil {
		logger.Fatal("analyzing skill gaps", zap.Error(err))
	}

	if resp.SkillGaps != nil {
		logger.Info("skill gaps analyzed",
			zap.Float64("overall_score", resp.SkillGaps.OverallScore),
			zap.Int("gaps", len(resp.SkillGaps.Gaps)),
			zap.Int("missing", len(resp.SkillGaps.MissingSkills)),
			zap.String("timeline", resp.SkillGaps.Timeline.Label),
		)
	}

	if err := printJSON(resp); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}

	chain, _ := cmd.Flags().GetBool("plan")
	if !chain || resp.SkillGaps == nil {
		return
	}

	budget, _ := cmd.Flags().GetFloat64("budget")
	planResp, err := eng.Do(ctx, &engine.Request{
		Action: engine.ActionBuildPlan,
		BuildPlan: &engine.BuildPlanRequest{
			Gaps:        training.FromAnalysis(resp.SkillGaps),
			Constraints: training.Constraints{Budget: budget},
		},
	})
	if err != nil {
		logger.Fatal("building training plan", zap.Error(err))
	}

	if planResp.TrainingPlan != nil {
		logger.Info("training plan generated",
			zap.Int("courses", len(planResp.TrainingPlan.Courses)),
			zap.Float64("total_cost", planResp.TrainingPlan.Cost.TotalCost),
		)
	}

	if err := printJSON(planResp); err != nil {
		logger.Fatal("printing plan", zap.Error(err))
	}
}
