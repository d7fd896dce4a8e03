package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentforge/talentforge/internal/logger"
	"github.com/talentforge/talentforge/internal/profilestore"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage stored learner profiles",
}

var profilePutCmd = &cobra.Command{
	Use:   "put <id>",
	Short: "Create or update a profile from a skills file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(cmd, func(store *profilestore.Store, logger *zap.Logger) {
			skills, err := loadSkills(cmd.Flag("skills").Value.String())
			if err != nil {
				logger.Fatal("loading skills", zap.Error(err))
			}

			name := cmd.Flag("name").Value.String()
			if err := store.PutProfile(args[0], name, skills); err != nil {
				logger.Fatal("saving profile", zap.Error(err))
			}

			logger.Info("profile saved",
				zap.String("profile_id", args[0]),
				zap.Int("skills", len(skills)),
			)
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a profile and its saved plans",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(cmd, func(store *profilestore.Store, logger *zap.Logger) {
			profile, err := store.GetProfile(args[0])
			if err != nil {
				logger.Fatal("getting profile", zap.Error(err))
			}

			plans, err := store.ListPlans(args[0])
			if err != nil {
				logger.Fatal("listing plans", zap.Error(err))
			}

			if err := printJSON(map[string]any{"profile": profile, "plans": plans}); err != nil {
				logger.Fatal("printing profile", zap.Error(err))
			}
		})
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	Run: func(cmd *cobra.Command, _ []string) {
		withStore(cmd, func(store *profilestore.Store, logger *zap.Logger) {
			profiles, err := store.ListProfiles()
			if err != nil {
				logger.Fatal("listing profiles", zap.Error(err))
			}

			if err := printJSON(profiles); err != nil {
				logger.Fatal("printing profiles", zap.Error(err))
			}
		})
	},
}

var profileEvictCmd = &cobra.Command{
	Use:   "evict <id>",
	Short: "Remove a profile and its saved plans",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(cmd, func(store *profilestore.Store, logger *zap.Logger) {
			if err := store.EvictProfile(args[0]); err != nil {
				logger.Fatal("evicting profile", zap.Error(err))
			}

			logger.Info("profile evicted", zap.String("profile_id", args[0]))
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)

	profilePutCmd.Flags().String("name", "", "display name for the profile")
	profilePutCmd.Flags().String("skills", "", "file with the profile's skills (json or yaml)")
	profilePutCmd.MarkFlagRequired("skills")

	profileCmd.AddCommand(profilePutCmd, profileShowCmd, profileListCmd, profileEvictCmd)
}

func withStore(_ *cobra.Command, fn func(*profilestore.Store, *zap.Logger)) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	store, err := profilestore.Open(storePath(config))
	if err != nil {
		logger.Fatal("opening profile store", zap.Error(err))
	}
	defer store.Close()

	fn(store, logger)
}
