package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentforge/talentforge/internal/compliance"
	"github.com/talentforge/talentforge/internal/engine"
	"github.com/talentforge/talentforge/internal/logger"
)

const contentPreviewLength = 120

func preview(s string) string {
	return logger.Preview(s, contentPreviewLength)
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Check an HR document for compliance issues and risk factors",
	Run: func(cmd *cobra.Command, _ []string) {
		runAudit(cmd)
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringP("file", "f", "", "document file to check")
	auditCmd.Flags().StringP("type", "t", "", "document type (policy, contract, procedure, regulation)")
	auditCmd.Flags().String("jurisdiction", "US", "legal jurisdiction")
	auditCmd.Flags().String("industry", "technology", "industry sector")
	auditCmd.Flags().String("depth", "full", "check depth (full, quick, risk_only)")

	auditCmd.MarkFlagRequired("file")
	auditCmd.MarkFlagRequired("type")
}

func runAudit(cmd *cobra.Command) {
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

	path := cmd.Flag("file").Value.String()
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("reading document", zap.String("path", path), zap.Error(err))
	}

	logger.Debug("checking document", zap.String("preview", preview(string(content))))

	resp, err := eng.Do(context.Background(), &engine.Request{
		Action: engine.ActionCheckCompliance,
		CheckCompliance: &compliance.Request{
			DocumentType: compliance.DocumentType(cmd.Flag("type").Value.String()),
			Content:      string(content),
			Jurisdiction: cmd.Flag("jurisdiction").Value.String(),
			Industry:     cmd.Flag("industry").Value.String(),
			Depth:        compliance.Depth(cmd.Flag("depth").Value.String()),
		},
	})
	if err != nil {
		logger.Fatal("checking compliance", zap.Error(err))
	}

	if resp.Compliance != nil {
		logger.Info("compliance checked",
			zap.Float64("score", resp.Compliance.Score),
			zap.String("status", resp.Compliance.Status),
			zap.Int("issues", len(resp.Compliance.Issues)),
			zap.Int("risks", len(resp.Compliance.RiskFactors)),
		)
	}

	if err := printJSON(resp); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}
}
