package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentforge/talentforge/internal/compliance"
	"github.com/talentforge/talentforge/internal/engine"
	"github.com/talentforge/talentforge/internal/jobfit"
	"github.com/talentforge/talentforge/internal/skillgap"
	"github.com/talentforge/talentforge/internal/training"
)

const (
	app = "talentforge"
)

// Config is the file-backed configuration. Every section is optional; unset
// sections fall back to the built-in defaults.
type Config struct {
	CatalogFile  string `mapstructure:"catalog-file"`
	RulebookFile string `mapstructure:"rulebook-file"`
	StoreFile    string `mapstructure:"store-file"`

	JobFit   *jobfit.Config   `mapstructure:"jobfit"`
	SkillGap *skillgap.Config `mapstructure:"skillgap"`
	Training *training.Config `mapstructure:"training"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talentforge scores job fit, skill gaps and compliance risk, and builds budget-aware training plans",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talentforge.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional, but when present it must parse.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}
	if config == nil {
		config = &Config{}
	}

	return config, nil
}

// newEngine assembles the engine from the config, loading the rulebook and
// catalog files when configured.
func newEngine(config *Config, logger *zap.Logger) (*engine.Engine, error) {
	var rulebook *compliance.Rulebook
	if config.RulebookFile != "" {
		loaded, err := compliance.LoadRulebook(config.RulebookFile)
		if err != nil {
			return nil, err
		}
		rulebook = loaded
		logger.Debug("loaded rulebook", zap.String("path", config.RulebookFile), zap.Int("version", loaded.Version))
	}

	var catalog *training.Catalog
	if config.CatalogFile != "" {
		loaded, err := training.LoadCatalog(config.CatalogFile)
		if err != nil {
			return nil, err
		}
		catalog = loaded
		logger.Debug("loaded catalog", zap.String("path", config.CatalogFile), zap.Int("version", loaded.Version))
	}

	return engine.New(engine.Options{
		JobFit:   config.JobFit,
		SkillGap: config.SkillGap,
		Training: config.Training,
		Rulebook: rulebook,
		Catalog:  catalog,
		Logger:   logger,
	}), nil
}
