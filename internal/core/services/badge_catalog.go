package services

import (
	_ "embed"
	"fmt"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed badges.yaml
var defaultBadgeCatalog []byte

type badgeRequirementYAML struct {
	Metric    string `yaml:"metric"`
	Threshold string `yaml:"threshold"`
}

type badgeDefinitionYAML struct {
	ID              string                 `yaml:"id"`
	Name            string                 `yaml:"name"`
	Description     string                 `yaml:"description"`
	Icon            string                 `yaml:"icon"`
	IconColor       string                 `yaml:"iconColor"`
	BackgroundColor string                 `yaml:"backgroundColor"`
	Condition       string                 `yaml:"condition"`
	TrackProgress   bool                   `yaml:"trackProgress"`
	Requirements    []badgeRequirementYAML `yaml:"requirements"`
}

// DefaultBadgeCatalog returns the built-in eight-badge catalog.
func DefaultBadgeCatalog() ([]domain.BadgeDefinition, error) {
	return ParseBadgeCatalog(defaultBadgeCatalog)
}

// ParseBadgeCatalog decodes and validates a YAML badge catalog.
func ParseBadgeCatalog(data []byte) ([]domain.BadgeDefinition, error) {
	var rows []badgeDefinitionYAML
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse badge catalog: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("badge catalog is empty")
	}

	seen := make(map[string]bool, len(rows))
	catalog := make([]domain.BadgeDefinition, 0, len(rows))
	for _, row := range rows {
		if seen[row.ID] {
			return nil, fmt.Errorf("badge catalog lists id %q twice", row.ID)
		}
		seen[row.ID] = true

		def := domain.BadgeDefinition{
			ID:              row.ID,
			Name:            row.Name,
			Description:     row.Description,
			Icon:            row.Icon,
			IconColor:       row.IconColor,
			BackgroundColor: row.BackgroundColor,
			Condition:       row.Condition,
			TrackProgress:   row.TrackProgress,
		}
		for _, req := range row.Requirements {
			threshold, err := decimal.NewFromString(req.Threshold)
			if err != nil {
				return nil, fmt.Errorf("badge %s: invalid threshold %q: %w", row.ID, req.Threshold, err)
			}
			def.Requirements = append(def.Requirements, domain.BadgeRequirement{
				Metric:    domain.BadgeMetric(req.Metric),
				Threshold: threshold,
			})
		}
		if err := def.Validate(); err != nil {
			return nil, err
		}
		catalog = append(catalog, def)
	}
	return catalog, nil
}

// MustDefaultBadgeCatalog is DefaultBadgeCatalog for program start-up; the embedded file is fixed at build time.
func MustDefaultBadgeCatalog() []domain.BadgeDefinition {
	catalog, err := DefaultBadgeCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}
