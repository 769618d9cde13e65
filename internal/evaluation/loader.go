package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadScenarios reads and parses a scenario set from a JSON file.
func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios file: %w", err)
	}

	var scenarios []Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios: %w", err)
	}

	return scenarios, nil
}

// ValidateScenarios checks that all scenarios have required fields and valid values.
func ValidateScenarios(scenarios []Scenario) error {
	seen := make(map[string]struct{}, len(scenarios))

	for i, s := range scenarios {
		if s.ID == "" {
			return fmt.Errorf("scenario at index %d: missing id", i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("scenario at index %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = struct{}{}

		if !s.Domain.IsValid() {
			return fmt.Errorf("scenario %q: invalid domain %q (must be lodging/guide)", s.ID, s.Domain)
		}
		if len(s.ExpectedTags) == 0 && s.ExpectedProvince == "" {
			return fmt.Errorf("scenario %q: needs expected_tags or expected_province", s.ID)
		}
		if s.Query.BudgetMin > s.Query.BudgetMax {
			return fmt.Errorf("scenario %q: budget_min exceeds budget_max", s.ID)
		}
		if s.Domain == DomainGuide && len(s.Query.Languages) == 0 {
			return fmt.Errorf("scenario %q: guide scenarios need at least one language", s.ID)
		}
	}

	return nil
}
