package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talentforge/talentforge/internal/taxonomy"
	"github.com/talentforge/talentforge/internal/training"
)

// loadLoose reads a JSON or YAML file into untyped records. The format is
// picked by extension, defaulting to YAML.
func loadLoose(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw any
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return raw, nil
	}

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return raw, nil
}

func loadSkills(path string) ([]taxonomy.Skill, error) {
	raw, err := loadLoose(path)
	if err != nil {
		return nil, err
	}
	return taxonomy.DecodeSkills(raw)
}

func loadRequirements(path string) ([]taxonomy.Requirement, error) {
	raw, err := loadLoose(path)
	if err != nil {
		return nil, err
	}
	return taxonomy.DecodeRequirements(raw)
}

func loadExperience(path string) ([]taxonomy.Experience, error) {
	raw, err := loadLoose(path)
	if err != nil {
		return nil, err
	}
	return taxonomy.DecodeExperience(raw)
}

func loadGaps(path string) ([]training.SkillGap, error) {
	raw, err := loadLoose(path)
	if err != nil {
		return nil, err
	}
	return training.DecodeGaps(raw)
}

func printJSON(v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("rendering result: %w", err)
	}
	fmt.Println(string(pretty))
	return nil
}

// dumpToTmpFile writes a result as JSON to a temporary file and returns its
// name.
func dumpToTmpFile(prefix string, v any) (string, error) {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("rendering result: %w", err)
	}

	file, err := os.CreateTemp("", prefix+"-*.json")
	if err != nil {
		return "", fmt.Errorf("creating tmp file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(pretty); err != nil {
		return "", fmt.Errorf("writing tmp file: %w", err)
	}

	return file.Name(), nil
}
