package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentforge/talentforge/internal/engine"
	"github.com/talentforge/talentforge/internal/jobfit"
	"github.com/talentforge/talentforge/internal/logger"
	"github.com/talentforge/talentforge/internal/taxonomy"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a candidate's fit against job requirements",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("candidate", "c", "", "file with candidate skills (json or yaml)")
	matchCmd.Flags().StringP("job", "r", "", "file with job requirements (json or yaml)")
	matchCmd.Flags().StringP("experience", "e", "", "file with work history (json or yaml)")
	matchCmd.Flags().StringP("level", "l", "mid", "target job level (entry, mid, senior, lead, executive)")

	matchCmd.MarkFlagRequired("candidate")
	matchCmd.MarkFlagRequired("job")
}

func runMatch(cmd *cobra.Command) {
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

	candidate, err := loadSkills(cmd.Flag("candidate").Value.String())
	if err != nil {
		logger.Fatal("loading candidate skills", zap.Error(err))
	}

	requirements, err := loadRequirements(cmd.Flag("job").Value.String())
	if err != nil {
		logger.Fatal("loading job requirements", zap.Error(err))
	}

	var experience []taxonomy.Experience
	if path := cmd.Flag("experience").Value.String(); path != "" {
		experience, err = loadExperience(path)
		if err != nil {
			logger.Fatal("loading work history", zap.Error(err))
		}
	}

	resp, err := eng.Do(context.Background(), &engine.Request{
		Action: engine.ActionMatchJob,
		MatchJob: &engine.MatchJobRequest{
			CandidateSkills: candidate,
			Requirements:    requirements,
			Experience:      experience,
			JobLevel:        jobfit.JobLevel(cmd.Flag("level").Value.String()),
		},
	})
	if err != nil {
		logger.Fatal("matching job requirements", zap.Error(err))
	}

	if resp.JobFit != nil {
		logger.Info("job fit scored",
			zap.Float64("fit_score", resp.JobFit.FitScore),
			zap.String("assessment", resp.JobFit.OverallAssessment),
		)
	}

	if err := printJSON(resp); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}
}
