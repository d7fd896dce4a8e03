package training

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeGaps converts loose gap records, as produced by a gap analysis dump
// or an HRIS adapter, into typed planner input.
func DecodeGaps(items any) ([]SkillGap, error) {
	var gaps []SkillGap

	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &gaps,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decoding skill gaps: %w", err)
	}

	return gaps, nil
}
