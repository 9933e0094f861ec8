package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Dorms, 10)
	assert.Len(t, c.ActionTypes, 20)
	assert.Contains(t, c.Dorms, "Orchard Hill")

	var bike *ActionTypeEntry
	for i := range c.ActionTypes {
		if c.ActionTypes[i].Name == "Bike to Class" {
			bike = &c.ActionTypes[i]
		}
	}
	require.NotNil(t, bike)
	assert.Equal(t, int64(50), bike.BasePoints)
	assert.InDelta(t, 2.0, bike.CarbonImpactKg, 1e-9)
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
	}{
		{
			name: "Valid catalog",
			raw: `
dorms: [" Sylvan ", Central]
action_types:
  - {name: Recycle, description: Recycled items, base_points: 10, carbon_impact_kg: 0.5}
`,
		},
		{
			name:      "Duplicate dorm after trimming",
			raw:       `dorms: [Sylvan, " Sylvan"]`,
			expectErr: true,
		},
		{
			name:      "Blank dorm",
			raw:       `dorms: ["  "]`,
			expectErr: true,
		},
		{
			name: "Duplicate action type",
			raw: `
action_types:
  - {name: Recycle, base_points: 10}
  - {name: Recycle, base_points: 20}
`,
			expectErr: true,
		},
		{
			name:      "Negative points",
			raw:       `action_types: [{name: Recycle, base_points: -1}]`,
			expectErr: true,
		},
		{
			name:      "Negative carbon",
			raw:       `action_types: [{name: Recycle, carbon_impact_kg: -0.1}]`,
			expectErr: true,
		},
		{
			name:      "Unknown field",
			raw:       `dormz: [Sylvan]`,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Parse([]byte(tc.raw))
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"Sylvan", "Central"}, c.Dorms)
			require.Len(t, c.ActionTypeModels(), 1)
			assert.Equal(t, "Recycle", c.ActionTypeModels()[0].Name)
			assert.Equal(t, int64(10), c.ActionTypeModels()[0].BasePoints)
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.DormModels(), 10)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dorms: [Alpha]\n"), 0o600))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", c.DormModels()[0].Name)
	assert.Empty(t, c.ActionTypes)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
