package evaluation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenarios_ValidFile(t *testing.T) {
	content := `[
		{"id": "galle-luxury", "name": "Luxury Beach (Galle)", "domain": "lodging",
		 "query": {"budget_min": 10000, "budget_max": 30000, "interests": ["coastal", "luxury"], "group_size": 2, "city": "Galle", "province": "Southern"},
		 "expected_tags": ["coastal", "luxury", "romantic"], "expected_province": "Southern"},
		{"id": "kandy-culture-guide", "domain": "guide",
		 "query": {"budget_min": 2000, "budget_max": 15000, "languages": ["English"], "expertise": ["Cultural"]},
		 "expected_tags": ["Cultural", "Historical"], "expected_province": "Central"}
	]`
	path := writeTempFile(t, content)

	scenarios, err := LoadScenarios(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	assert.Equal(t, DomainLodging, scenarios[0].Domain)
	assert.Equal(t, "Galle", scenarios[0].Query.City)
	assert.Equal(t, 2, scenarios[0].Query.GroupSize)
	assert.Equal(t, []string{"English"}, scenarios[1].Query.Languages)
	assert.NoError(t, ValidateScenarios(scenarios))
}

func TestLoadScenarios_Errors(t *testing.T) {
	_, err := LoadScenarios("/nonexistent/path.json")
	assert.Error(t, err)

	_, err = LoadScenarios(writeTempFile(t, `not valid json`))
	assert.Error(t, err)

	scenarios, err := LoadScenarios(writeTempFile(t, `[]`))
	require.NoError(t, err)
	assert.Empty(t, scenarios)
}

func TestValidateScenarios(t *testing.T) {
	valid := Scenario{ID: "s1", Domain: DomainLodging, ExpectedTags: []string{"coastal"}}

	tests := []struct {
		name      string
		scenarios []Scenario
	}{
		{"missing id", []Scenario{{Domain: DomainLodging, ExpectedTags: []string{"x"}}}},
		{"duplicate id", []Scenario{valid, valid}},
		{"unknown domain", []Scenario{{ID: "s2", Domain: "events", ExpectedTags: []string{"x"}}}},
		{"no expectations", []Scenario{{ID: "s3", Domain: DomainLodging}}},
		{"inverted budget", []Scenario{{ID: "s4", Domain: DomainLodging, ExpectedProvince: "Uva",
			Query: ScenarioQuery{BudgetMin: 9000, BudgetMax: 1000}}}},
		{"guide without language", []Scenario{{ID: "s5", Domain: DomainGuide, ExpectedProvince: "Uva"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateScenarios(tt.scenarios))
		})
	}
}

func TestDomain_IsValid(t *testing.T) {
	assert.True(t, DomainLodging.IsValid())
	assert.True(t, DomainGuide.IsValid())
	assert.False(t, Domain("").IsValid())
	assert.False(t, Domain("events").IsValid())
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
