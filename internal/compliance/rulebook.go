package compliance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Severity is the weight class of an issue or risk factor.
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// SeverityWeights maps severity to the penalty subtracted from the compliance
// score. Defaults are inherited placeholder constants and stay overridable.
type SeverityWeights struct {
	High   float64 `yaml:"high"`
	Medium float64 `yaml:"medium"`
	Low    float64 `yaml:"low"`
}

// For returns the penalty weight for a severity. Unknown severities weigh as
// Low.
func (w SeverityWeights) For(s Severity) float64 {
	switch s {
	case SeverityHigh:
		return w.High
	case SeverityMedium:
		return w.Medium
	default:
		return w.Low
	}
}

// KeywordRule requires a term to be present in a document. Rules may be
// restricted to a jurisdiction or industry.
type KeywordRule struct {
	Term           string   `yaml:"term"`
	Severity       Severity `yaml:"severity"`
	Description    string   `yaml:"description"`
	Recommendation string   `yaml:"recommendation"`
	Jurisdiction   string   `yaml:"jurisdiction,omitempty"`
	Industry       string   `yaml:"industry,omitempty"`
}

// RiskTerm flags the presence of high-risk qualifying language.
type RiskTerm struct {
	Term           string   `yaml:"term"`
	Severity       Severity `yaml:"severity"`
	Recommendation string   `yaml:"recommendation"`
}

// ClauseRule requires a structural clause in a document type.
type ClauseRule struct {
	Term           string   `yaml:"term"`
	Severity       Severity `yaml:"severity"`
	Description    string   `yaml:"description"`
	Recommendation string   `yaml:"recommendation"`
}

// RegulatoryRequirement is an informational registry entry. It never affects
// the score.
type RegulatoryRequirement struct {
	Regulation   string `yaml:"regulation" json:"regulation"`
	Status       string `yaml:"status" json:"status"`
	Impact       string `yaml:"impact" json:"impact"`
	Description  string `yaml:"description" json:"description"`
	Jurisdiction string `yaml:"jurisdiction,omitempty" json:"-"`
	Industry     string `yaml:"industry,omitempty" json:"-"`
}

// Rulebook is the versioned rule set a Checker applies. It is loaded once and
// never mutated, so a single rulebook may back concurrent checks.
type Rulebook struct {
	Version         int                            `yaml:"version"`
	Weights         SeverityWeights                `yaml:"severity-weights"`
	DocumentRules   map[DocumentType][]KeywordRule `yaml:"document-rules"`
	RiskTerms       []RiskTerm                     `yaml:"risk-terms"`
	RequiredClauses map[DocumentType][]ClauseRule  `yaml:"required-clauses"`
	Registry        []RegulatoryRequirement        `yaml:"registry"`
}

// LoadRulebook reads and validates a rulebook from a YAML file.
func LoadRulebook(path string) (*Rulebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rulebook %s: %w", path, err)
	}

	var book Rulebook
	if err := yaml.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("parse rulebook %s: %w", path, err)
	}

	if err := book.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rulebook %s: %w", path, err)
	}

	return &book, nil
}

// Validate checks structural soundness of the rulebook.
func (b *Rulebook) Validate() error {
	if b.Version <= 0 {
		return fmt.Errorf("version must be positive, got %d", b.Version)
	}
	if b.Weights.High <= 0 || b.Weights.Medium <= 0 || b.Weights.Low <= 0 {
		return fmt.Errorf("severity weights must be positive")
	}
	for docType, rules := range b.DocumentRules {
		for i, rule := range rules {
			if rule.Term == "" {
				return fmt.Errorf("document rule %d for %s has no term", i, docType)
			}
		}
	}
	for i, term := range b.RiskTerms {
		if term.Term == "" {
			return fmt.Errorf("risk term %d has no term", i)
		}
	}
	return nil
}

// DefaultRulebook returns the built-in rule set.
func DefaultRulebook() *Rulebook {
	return &Rulebook{
		Version: 1,
		Weights: SeverityWeights{High: 0.3, Medium: 0.2, Low: 0.1},
		DocumentRules: map[DocumentType][]KeywordRule{
			DocumentPolicy: {
				{
					Term:           "discrimination",
					Severity:       SeverityHigh,
					Description:    "Anti-discrimination policy not clearly stated",
					Recommendation: "Add explicit anti-discrimination clause",
				},
				{
					Term:           "harassment",
					Severity:       SeverityHigh,
					Description:    "Anti-harassment policy not clearly stated",
					Recommendation: "Add explicit anti-harassment clause",
				},
				{
					Term:           "fmla",
					Severity:       SeverityMedium,
					Description:    "FMLA compliance not addressed",
					Recommendation: "Add FMLA policy section",
					Jurisdiction:   "US",
				},
			},
			DocumentContract: {
				{
					Term:           "at-will",
					Severity:       SeverityMedium,
					Description:    "At-will employment clause not specified",
					Recommendation: "Add at-will employment clause",
					Jurisdiction:   "US",
				},
				{
					Term:           "confidentiality",
					Severity:       SeverityMedium,
					Description:    "Confidentiality clause not included",
					Recommendation: "Add confidentiality and non-disclosure clause",
				},
			},
			DocumentProcedure: {
				{
					Term:           "hipaa",
					Severity:       SeverityHigh,
					Description:    "HIPAA compliance not addressed",
					Recommendation: "Add HIPAA compliance procedures",
					Industry:       "healthcare",
				},
				{
					Term:           "sox",
					Severity:       SeverityHigh,
					Description:    "SOX compliance not addressed",
					Recommendation: "Add SOX compliance procedures",
					Industry:       "finance",
				},
			},
		},
		RiskTerms: []RiskTerm{
			{Term: "unlimited", Severity: SeverityMedium, Recommendation: "Review and potentially qualify this language"},
			{Term: "irrevocable", Severity: SeverityMedium, Recommendation: "Review and potentially qualify this language"},
			{Term: "permanent", Severity: SeverityMedium, Recommendation: "Review and potentially qualify this language"},
			{Term: "absolute", Severity: SeverityMedium, Recommendation: "Review and potentially qualify this language"},
		},
		RequiredClauses: map[DocumentType][]ClauseRule{
			DocumentContract: {
				{
					Term:           "termination",
					Severity:       SeverityHigh,
					Description:    "Termination clause not found",
					Recommendation: "Add clear termination provisions",
				},
			},
		},
		Registry: []RegulatoryRequirement{
			{
				Regulation:   "Title VII of Civil Rights Act",
				Status:       "Applicable",
				Impact:       "High",
				Description:  "Prohibits employment discrimination",
				Jurisdiction: "US",
			},
			{
				Regulation:   "Americans with Disabilities Act",
				Status:       "Applicable",
				Impact:       "High",
				Description:  "Requires reasonable accommodations",
				Jurisdiction: "US",
			},
			{
				Regulation:   "Family and Medical Leave Act",
				Status:       "Applicable",
				Impact:       "Medium",
				Description:  "Provides leave entitlements",
				Jurisdiction: "US",
			},
			{
				Regulation:  "California Consumer Privacy Act",
				Status:      "Applicable",
				Impact:      "High",
				Description: "Data privacy requirements",
				Industry:    "technology",
			},
		},
	}
}
