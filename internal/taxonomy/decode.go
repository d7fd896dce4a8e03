package taxonomy

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeSkills converts loose records, as produced by resume-extraction or
// HRIS adapters, into typed skills.
func DecodeSkills(items any) ([]Skill, error) {
	var skills []Skill
	if err := decode(items, &skills); err != nil {
		return nil, fmt.Errorf("decoding skills: %w", err)
	}
	return skills, nil
}

// DecodeRequirements converts loose records into typed requirements.
func DecodeRequirements(items any) ([]Requirement, error) {
	var requirements []Requirement
	if err := decode(items, &requirements); err != nil {
		return nil, fmt.Errorf("decoding requirements: %w", err)
	}
	return requirements, nil
}

// DecodeExperience converts loose records into a typed work history.
func DecodeExperience(items any) ([]Experience, error) {
	var experience []Experience
	if err := decode(items, &experience); err != nil {
		return nil, fmt.Errorf("decoding experience: %w", err)
	}
	return experience, nil
}

func decode(input, output any) error {
	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}
