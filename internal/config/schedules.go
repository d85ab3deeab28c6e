package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// ScheduleFile is a YAML document of named tax schedules
type ScheduleFile struct {
	Schedules []domain.TaxSchedule `yaml:"schedules"`
}

// LoadTaxSchedules reads custom tax schedules from a YAML file
func (ip *InputParser) LoadTaxSchedules(filename string) ([]domain.TaxSchedule, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file ScheduleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(file.Schedules) == 0 {
		return nil, fmt.Errorf("%s defines no schedules", filename)
	}

	names := make([]string, len(file.Schedules))
	for i, s := range file.Schedules {
		if s.Name == "" {
			return nil, fmt.Errorf("schedule %d: name is required", i+1)
		}
		if len(s.Brackets) == 0 {
			return nil, fmt.Errorf("schedule %q: brackets are required", s.Name)
		}
		names[i] = s.Name
	}
	if err := uniqueNames("tax schedule", names); err != nil {
		return nil, err
	}

	return file.Schedules, nil
}
