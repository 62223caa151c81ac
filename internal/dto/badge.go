package dto

import "github.com/SscSPs/expense_tracker_app/internal/core/domain"

// BadgeResponse defines the data returned for an achievement.
type BadgeResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Icon            string `json:"icon"`
	IconColor       string `json:"iconColor"`
	BackgroundColor string `json:"backgroundColor"`
	Condition       string `json:"condition"`
	Unlocked        bool   `json:"unlocked"`
	Progress        *int   `json:"progress,omitempty"`
}

// ListBadgesResponse is the achievements screen payload.
type ListBadgesResponse struct {
	Badges        []BadgeResponse `json:"badges"`
	UnlockedCount int             `json:"unlockedCount"`
	TotalCount    int             `json:"totalCount"`
}

// ToBadgeResponse converts a domain.Badge to BadgeResponse DTO.
func ToBadgeResponse(b *domain.Badge) BadgeResponse {
	return BadgeResponse{
		ID:              b.ID,
		Name:            b.Name,
		Description:     b.Description,
		Icon:            b.Icon,
		IconColor:       b.IconColor,
		BackgroundColor: b.BackgroundColor,
		Condition:       b.Condition,
		Unlocked:        b.Unlocked,
		Progress:        b.Progress,
	}
}

// ToBadgeResponses converts a slice of domain.Badge to []BadgeResponse.
// A nil slice becomes an empty one so clients always see an array.
func ToBadgeResponses(badges []domain.Badge) []BadgeResponse {
	responses := make([]BadgeResponse, len(badges))
	for i := range badges {
		responses[i] = ToBadgeResponse(&badges[i])
	}
	return responses
}

// ToListBadgesResponse builds the achievements payload with its unlocked counter.
func ToListBadgesResponse(badges []domain.Badge) ListBadgesResponse {
	unlocked := 0
	for _, b := range badges {
		if b.Unlocked {
			unlocked++
		}
	}
	return ListBadgesResponse{
		Badges:        ToBadgeResponses(badges),
		UnlockedCount: unlocked,
		TotalCount:    len(badges),
	}
}
