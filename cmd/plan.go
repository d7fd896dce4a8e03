package cmd

import (
	"context"
	"errors"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentforge/talentforge/internal/engine"
	"github.com/talentforge/talentforge/internal/logger"
	"github.com/talentforge/talentforge/internal/profilestore"
	"github.com/talentforge/talentforge/internal/training"
)

const (
	PromptAccept     = "Accept the plan"
	PromptSave       = "Save plan to profile store"
	PromptDumpToFile = "Dump plan to file"
	PromptQuit       = "Quit"

	defaultStoreFile = "talentforge.db"
)

var errExit = errors.New("exit requested")

var planPrompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptAccept, PromptSave, PromptDumpToFile, PromptQuit},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a budget-aware training plan from skill gaps",
	Run: func(cmd *cobra.Command, _ []string) {
		runPlan(cmd)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringP("gaps", "g", "", "file with skill gaps (json or yaml)")
	planCmd.Flags().Float64P("budget", "b", 0, "budget cap in dollars (0 is unconstrained)")
	planCmd.Flags().StringSlice("goals", nil, "career goals")
	planCmd.Flags().StringSlice("providers", nil, "preferred training providers")
	planCmd.Flags().StringP("profile", "p", "", "profile id to save the plan under")
	planCmd.Flags().BoolP("auto-approve", "y", false, "print the plan without the interactive prompt")

	planCmd.MarkFlagRequired("gaps")
}

func runPlan(cmd *cobra.Command) {
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

	gaps, err := loadGaps(cmd.Flag("gaps").Value.String())
	if err != nil {
		logger.Fatal("loading skill gaps", zap.Error(err))
	}

	budget, _ := cmd.Flags().GetFloat64("budget")
	goals, _ := cmd.Flags().GetStringSlice("goals")
	providers, _ := cmd.Flags().GetStringSlice("providers")

	resp, err := eng.Do(context.Background(), &engine.Request{
		Action: engine.ActionBuildPlan,
		BuildPlan: &engine.BuildPlanRequest{
			Gaps:        gaps,
			CareerGoals: goals,
			Constraints: training.Constraints{
				Budget:             budget,
				PreferredProviders: providers,
			},
		},
	})
	if err != nil {
		logger.Fatal("building training plan", zap.Error(err))
	}

	plan := resp.TrainingPlan
	if plan == nil {
		logger.Fatal("no plan produced", zap.String("error", resp.Error))
	}

	logger.Info("training plan generated",
		zap.Int("courses", len(plan.Courses)),
		zap.Float64("total_cost", plan.Cost.TotalCost),
		zap.Float64("budget_utilization", plan.Cost.BudgetUtilization),
	)

	if err := printJSON(resp); err != nil {
		logger.Fatal("printing plan", zap.Error(err))
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		return
	}

	for {
		_, action, err := planPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handlePlanAction(action, cmd, config, logger, plan); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handlePlanAction(action string, cmd *cobra.Command, config *Config, logger *zap.Logger, plan *training.Plan) error {
	switch action {
	case PromptAccept:
		logger.Info("plan accepted")
		return errExit
	case PromptQuit:
		logger.Info("exiting", zap.String("reason", "got quit from prompt"))
		return errExit
	case PromptDumpToFile:
		filename, err := dumpToTmpFile(app+"-plan", plan)
		if err != nil {
			return err
		}
		logger.Info("dumping plan to file", zap.String("filename", filename))
		return nil
	case PromptSave:
		return savePlan(cmd.Flag("profile").Value.String(), config, logger, plan)
	default:
		return errors.New("invalid action: " + action)
	}
}

func savePlan(profileID string, config *Config, logger *zap.Logger, plan *training.Plan) error {
	if profileID == "" {
		logger.Warn("cannot save plan",
			zap.String("hint", "pass --profile with the profile id to save under"),
		)
		return nil
	}

	store, err := profilestore.Open(storePath(config))
	if err != nil {
		return err
	}
	defer store.Close()

	planID, err := store.SavePlan(profileID, plan)
	if err != nil {
		return err
	}

	logger.Info("plan saved",
		zap.String("profile_id", profileID),
		zap.String("plan_id", planID),
	)
	return nil
}

func storePath(config *Config) string {
	if config != nil && config.StoreFile != "" {
		return config.StoreFile
	}
	return defaultStoreFile
}
