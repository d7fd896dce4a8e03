// Package compliance applies keyword and structural heuristics to HR
// documents and produces a weighted compliance score.
package compliance

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DocumentType classifies the document being checked.
type DocumentType string

const (
	DocumentPolicy     DocumentType = "policy"
	DocumentContract   DocumentType = "contract"
	DocumentProcedure  DocumentType = "procedure"
	DocumentRegulation DocumentType = "regulation"
)

// Depth selects how much of the check runs.
type Depth string

const (
	// DepthFull runs rule checks, the risk scan and the regulatory lookup.
	DepthFull Depth = "full"
	// DepthQuick skips the risk scan.
	DepthQuick Depth = "quick"
	// DepthRiskOnly runs only the risk scan.
	DepthRiskOnly Depth = "risk_only"
)

// ErrDocumentTypeRequired is returned when a check request names no document
// type.
var ErrDocumentTypeRequired = errors.New("document type is required")

// Request describes one compliance check.
type Request struct {
	DocumentType DocumentType `json:"document_type" mapstructure:"document_type"`
	Content      string       `json:"document_content" mapstructure:"document_content"`
	Jurisdiction string       `json:"jurisdiction,omitempty" mapstructure:"jurisdiction"`
	Industry     string       `json:"industry,omitempty" mapstructure:"industry"`
	Depth        Depth        `json:"check_type,omitempty" mapstructure:"check_type"`
}

// Issue is a rule violation found in the document.
type Issue struct {
	Type           string   `json:"issue_type"`
	Severity       Severity `json:"severity"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
}

// RiskFactor is a potential exposure flagged by the risk scan.
type RiskFactor struct {
	Type           string   `json:"risk_type"`
	Severity       Severity `json:"severity"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
}

// Result is the full outcome of a compliance check.
type Result struct {
	DocumentType    DocumentType            `json:"document_type"`
	Jurisdiction    string                  `json:"jurisdiction"`
	Industry        string                  `json:"industry"`
	Score           float64                 `json:"compliance_score"`
	Status          string                  `json:"compliance_status"`
	Issues          []Issue                 `json:"compliance_issues"`
	RiskFactors     []RiskFactor            `json:"risk_factors"`
	Regulatory      []RegulatoryRequirement `json:"regulatory_requirements"`
	Recommendations []string                `json:"recommendations"`
	CheckedAt       time.Time               `json:"checked_at"`
}

// Checker runs rulebook-driven compliance checks. It holds no mutable state
// and is safe for concurrent use.
type Checker struct {
	rulebook *Rulebook
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a checker. A nil rulebook means the built-in one.
func New(rulebook *Rulebook, logger *zap.Logger) *Checker {
	if rulebook == nil {
		rulebook = DefaultRulebook()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{rulebook: rulebook, logger: logger, now: time.Now}
}

// WithClock overrides the timestamp source. Intended for tests.
func (c *Checker) WithClock(now func() time.Time) *Checker {
	c.now = now
	return c
}

// Check analyzes the document and scores it. The only hard failure is a
// missing document type; an empty document simply accumulates every missing
// keyword as an issue.
func (c *Checker) Check(req Request) (*Result, error) {
	if req.DocumentType == "" {
		return nil, ErrDocumentTypeRequired
	}

	jurisdiction := req.Jurisdiction
	if jurisdiction == "" {
		jurisdiction = "US"
	}
	industry := req.Industry
	if industry == "" {
		industry = "technology"
	}
	depth := req.Depth
	if depth == "" {
		depth = DepthFull
	}

	content := strings.ToLower(req.Content)

	var issues []Issue
	if depth != DepthRiskOnly {
		issues = c.checkRules(req.DocumentType, content, jurisdiction, industry)
	}

	var risks []RiskFactor
	if depth != DepthQuick {
		risks = c.scanRisks(req.DocumentType, content)
	}

	var regulatory []RegulatoryRequirement
	if depth != DepthRiskOnly {
		regulatory = c.lookupRegulatory(jurisdiction, industry)
	}

	score := c.score(issues, risks)

	result := &Result{
		DocumentType:    req.DocumentType,
		Jurisdiction:    jurisdiction,
		Industry:        industry,
		Score:           score,
		Status:          status(score),
		Issues:          issues,
		RiskFactors:     risks,
		Regulatory:      regulatory,
		Recommendations: recommend(issues, risks),
		CheckedAt:       c.now(),
	}

	c.logger.Debug("compliance check completed",
		zap.String("document_type", string(req.DocumentType)),
		zap.String("depth", string(depth)),
		zap.Float64("score", score),
		zap.Int("issues", len(issues)),
		zap.Int("risks", len(risks)),
	)

	return result, nil
}

func (c *Checker) checkRules(docType DocumentType, content, jurisdiction, industry string) []Issue {
	issues := make([]Issue, 0)
	for _, rule := range c.rulebook.DocumentRules[docType] {
		if rule.Jurisdiction != "" && !strings.EqualFold(rule.Jurisdiction, jurisdiction) {
			continue
		}
		if rule.Industry != "" && !strings.EqualFold(rule.Industry, industry) {
			continue
		}
		if strings.Contains(content, rule.Term) {
			continue
		}
		issues = append(issues, Issue{
			Type:           "missing_requirement",
			Severity:       rule.Severity,
			Description:    rule.Description,
			Recommendation: rule.Recommendation,
		})
	}
	return issues
}

func (c *Checker) scanRisks(docType DocumentType, content string) []RiskFactor {
	risks := make([]RiskFactor, 0)

	for _, term := range c.rulebook.RiskTerms {
		if !strings.Contains(content, term.Term) {
			continue
		}
		risks = append(risks, RiskFactor{
			Type:           "language_risk",
			Severity:       term.Severity,
			Description:    fmt.Sprintf("High-risk term '%s' identified", term.Term),
			Recommendation: term.Recommendation,
		})
	}

	for _, clause := range c.rulebook.RequiredClauses[docType] {
		if strings.Contains(content, clause.Term) {
			continue
		}
		risks = append(risks, RiskFactor{
			Type:           "missing_element",
			Severity:       clause.Severity,
			Description:    clause.Description,
			Recommendation: clause.Recommendation,
		})
	}

	return risks
}

func (c *Checker) lookupRegulatory(jurisdiction, industry string) []RegulatoryRequirement {
	requirements := make([]RegulatoryRequirement, 0)
	for _, req := range c.rulebook.Registry {
		if req.Jurisdiction != "" && strings.EqualFold(req.Jurisdiction, jurisdiction) {
			requirements = append(requirements, req)
			continue
		}
		if req.Industry != "" && strings.EqualFold(req.Industry, industry) {
			requirements = append(requirements, req)
		}
	}
	return requirements
}

// score is 1 minus the summed severity penalties, floored at 0.
func (c *Checker) score(issues []Issue, risks []RiskFactor) float64 {
	if len(issues) == 0 && len(risks) == 0 {
		return 1.0
	}

	penalty := 0.0
	for _, issue := range issues {
		penalty += c.rulebook.Weights.For(issue.Severity)
	}
	for _, risk := range risks {
		penalty += c.rulebook.Weights.For(risk.Severity)
	}

	return math.Max(0, 1.0-penalty)
}

func status(score float64) string {
	switch {
	case score >= 0.9:
		return "Compliant"
	case score >= 0.7:
		return "Mostly Compliant"
	case score >= 0.5:
		return "Partially Compliant"
	default:
		return "Non-Compliant"
	}
}

func recommend(issues []Issue, risks []RiskFactor) []string {
	recommendations := make([]string, 0, 6)

	for _, issue := range issues {
		if issue.Severity == SeverityHigh {
			recommendations = append(recommendations, "Address high-priority compliance issues immediately")
			break
		}
	}

	limit := len(issues)
	if limit > 3 {
		limit = 3
	}
	for _, issue := range issues[:limit] {
		recommendations = append(recommendations, issue.Recommendation)
	}

	if len(risks) > 0 {
		recommendations = append(recommendations, "Implement risk mitigation strategies")
	}

	recommendations = append(recommendations,
		"Conduct regular compliance audits",
		"Provide compliance training to relevant staff",
		"Establish compliance monitoring procedures",
	)

	return recommendations
}
