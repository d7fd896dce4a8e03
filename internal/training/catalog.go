package training

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talentforge/talentforge/internal/taxonomy"
)

// Course is one entry of a training catalog.
type Course struct {
	ID            string         `yaml:"id" json:"course_id"`
	Title         string         `yaml:"title" json:"title"`
	Provider      string         `yaml:"provider" json:"provider"`
	Duration      string         `yaml:"duration" json:"duration"`
	Hours         float64        `yaml:"hours" json:"hours"`
	Cost          float64        `yaml:"cost" json:"cost"`
	Level         taxonomy.Level `yaml:"level" json:"level"`
	Rating        float64        `yaml:"rating" json:"rating"`
	Certification bool           `yaml:"certification" json:"certification"`
}

// Catalog is a versioned course table keyed by normalized skill name. It is
// loaded once and never mutated, so a single catalog may back concurrent
// planning runs.
type Catalog struct {
	Version int                 `yaml:"version"`
	Courses map[string][]Course `yaml:"courses"`
}

// LoadCatalog reads and validates a catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}

	return &catalog, nil
}

// Validate checks structural soundness of the catalog.
func (c *Catalog) Validate() error {
	if c.Version <= 0 {
		return fmt.Errorf("version must be positive, got %d", c.Version)
	}
	for skill, courses := range c.Courses {
		for i, course := range courses {
			if course.ID == "" {
				return fmt.Errorf("course %d for skill %q has no id", i, skill)
			}
			if course.Cost < 0 {
				return fmt.Errorf("course %s has negative cost", course.ID)
			}
			if course.Hours < 0 {
				return fmt.Errorf("course %s has negative hours", course.ID)
			}
		}
	}
	return nil
}

// ForSkill returns the catalog entries for a skill, or nil when the skill is
// not listed.
func (c *Catalog) ForSkill(name string) []Course {
	return c.Courses[taxonomy.Key(name)]
}

// DefaultCatalog returns the built-in course table.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Version: 1,
		Courses: map[string][]Course{
			"kubernetes": {
				{
					ID:            "KUBE001",
					Title:         "Kubernetes Fundamentals",
					Provider:      "Coursera",
					Duration:      "4 weeks",
					Hours:         20,
					Cost:          49,
					Level:         taxonomy.LevelBeginner,
					Rating:        4.5,
					Certification: true,
				},
				{
					ID:            "KUBE002",
					Title:         "Advanced Kubernetes Administration",
					Provider:      "Udemy",
					Duration:      "6 weeks",
					Hours:         30,
					Cost:          89,
					Level:         taxonomy.LevelIntermediate,
					Rating:        4.3,
					Certification: true,
				},
			},
			"leadership": {
				{
					ID:       "LEAD001",
					Title:    "Leadership Development Workshop",
					Provider: "Internal Training",
					Duration: "2 weeks",
					Hours:    16,
					Cost:     0,
					Level:    taxonomy.LevelIntermediate,
					Rating:   4.7,
				},
				{
					ID:            "LEAD002",
					Title:         "Strategic Leadership",
					Provider:      "Harvard Business School",
					Duration:      "8 weeks",
					Hours:         40,
					Cost:          2500,
					Level:         taxonomy.LevelAdvanced,
					Rating:        4.8,
					Certification: true,
				},
			},
			"python": {
				{
					ID:            "PYTH001",
					Title:         "Python for Data Science",
					Provider:      "DataCamp",
					Duration:      "3 weeks",
					Hours:         15,
					Cost:          29,
					Level:         taxonomy.LevelIntermediate,
					Rating:        4.4,
					Certification: true,
				},
			},
		},
	}
}
