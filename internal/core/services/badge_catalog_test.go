package services_test

import (
	"testing"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/SscSPs/expense_tracker_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBadgeCatalog(t *testing.T) {
	catalog, err := services.DefaultBadgeCatalog()
	require.NoError(t, err)
	require.Len(t, catalog, 8)

	wantNames := []string{
		"First Expense", "Dedicated Tracker", "Streak Starter", "Week Warrior",
		"Category Collector", "Budget Master", "Level 5 Achiever", "Money Guru",
	}
	for i, def := range catalog {
		assert.Equal(t, wantNames[i], def.Name)
		assert.NotEmpty(t, def.Icon, def.ID)
		assert.NotEmpty(t, def.IconColor, def.ID)
		assert.NotEmpty(t, def.BackgroundColor, def.ID)
		assert.NotEmpty(t, def.Condition, def.ID)
	}

	first := catalog[0]
	assert.False(t, first.TrackProgress)
	require.Len(t, first.Requirements, 2)
	assert.Equal(t, domain.MetricExpenseCount, first.Requirements[0].Metric)
	assert.Equal(t, domain.MetricPoints, first.Requirements[1].Metric)

	guru := catalog[7]
	assert.True(t, guru.TrackProgress)
	assert.Equal(t, domain.MetricTotalTracked, guru.Requirements[0].Metric)
	assert.True(t, decimal.NewFromInt(10000).Equal(guru.Requirements[0].Threshold))
}

func TestParseBadgeCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "::: nope"},
		{"empty", "[]"},
		{"bad threshold", "- id: a\n  requirements:\n    - metric: points\n      threshold: lots\n"},
		{"unknown metric", "- id: a\n  requirements:\n    - metric: mood\n      threshold: \"1\"\n"},
		{"duplicate id", "- id: a\n  requirements:\n    - metric: points\n      threshold: \"1\"\n- id: a\n  requirements:\n    - metric: points\n      threshold: \"1\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.ParseBadgeCatalog([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
