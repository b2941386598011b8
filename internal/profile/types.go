// Package profile stores per-user preferences that survive across trips.
package profile

import "time"

// Preferences are the user's standing defaults, applied to new trips
// unless the conversation says otherwise.
type Preferences struct {
	Currency           string   `json:"currency,omitempty"`
	Language           string   `json:"language,omitempty"`
	FoodRestrictions   []string `json:"foodRestrictions,omitempty"`
	AccessibilityNeeds []string `json:"accessibilityNeeds,omitempty"`
	FavoriteStyles     []string `json:"favoriteStyles,omitempty"`
}

// Profile is what the assistant knows about a user independent of any
// single trip.
type Profile struct {
	UserID              string      `json:"userId"`
	Name                string      `json:"name,omitempty"`
	Preferences         Preferences `json:"preferences"`
	PastTripsCount      int         `json:"pastTripsCount"`
	LastTripDestination string      `json:"lastTripDestination,omitempty"`
	CreatedAt           time.Time   `json:"createdAt,omitempty"`
	UpdatedAt           time.Time   `json:"updatedAt,omitempty"`
}

// DefaultProfile is what Get returns for a user with no stored record:
// sensible defaults rather than an error, so first-contact flows need no
// special casing.
func DefaultProfile(userID string) *Profile {
	return &Profile{
		UserID: userID,
		Preferences: Preferences{
			Currency:           "BRL",
			Language:           "pt-BR",
			FoodRestrictions:   []string{},
			AccessibilityNeeds: []string{},
			FavoriteStyles:     []string{},
		},
	}
}
