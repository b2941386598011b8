package trip

import "time"

// Status is the lifecycle status of a trip. Progression is expected to be
// forward (DRAFT toward COMPLETED) but is caller-driven, not enforced.
type Status string

const (
	StatusDraft      Status = "DRAFT"
	StatusPlanning   Status = "PLANNING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// Phase is the conversational stage of trip planning.
type Phase string

const (
	// PhaseKnowledge collects the essential trip information.
	PhaseKnowledge Phase = "KNOWLEDGE"
	// PhasePlanning builds and refines itineraries.
	PhasePlanning Phase = "PLANNING"
	// PhaseBooking handles reservations.
	PhaseBooking Phase = "BOOKING"
	// PhaseConcierge follows the trip in real time.
	PhaseConcierge Phase = "CONCIERGE"
	// PhaseMemories organizes the post-trip wrap-up.
	PhaseMemories Phase = "MEMORIES"
)

// ValidPhase reports whether p is one of the known phases.
func ValidPhase(p Phase) bool {
	switch p {
	case PhaseKnowledge, PhasePlanning, PhaseBooking, PhaseConcierge, PhaseMemories:
		return true
	}
	return false
}

// Destination is one place the trip visits. The destinations list is a log
// of mentions: repeated mentions of the same place append new entries.
type Destination struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Country      string `json:"country,omitempty"`
	City         string `json:"city,omitempty"`
	Region       string `json:"region,omitempty"`
	StayDuration int    `json:"stayDuration,omitempty"`
	Priority     int    `json:"priority"`
	IsPrimary    bool   `json:"isPrimary"`
}

// Dates holds the trip's date information. Zero values mean "not collected
// yet": an empty StartDate and a zero DurationDays both count as absent.
type Dates struct {
	StartDate       string `json:"startDate,omitempty"` // ISO 8601
	EndDate         string `json:"endDate,omitempty"`   // ISO 8601
	DurationDays    int    `json:"durationDays,omitempty"`
	IsFlexible      bool   `json:"isFlexible"`
	FlexibilityDays int    `json:"flexibilityDays,omitempty"`
	PreferredSeason string `json:"preferredSeason,omitempty"`
}

// Traveler is one individual in the traveling group.
type Traveler struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name,omitempty"`
	Age                int      `json:"age,omitempty"`
	IsChild            bool     `json:"isChild"`
	IsLeadTraveler     bool     `json:"isLeadTraveler"`
	FoodRestrictions   []string `json:"foodRestrictions,omitempty"`
	AccessibilityNeeds []string `json:"accessibilityNeeds,omitempty"`
	FearsPhobias       []string `json:"fearsPhobias,omitempty"`
}

// Travelers describes the traveling group.
type Travelers struct {
	Count        int        `json:"count"`
	Adults       int        `json:"adults"`
	Children     int        `json:"children"`
	Infants      int        `json:"infants"`
	Relationship string     `json:"relationship,omitempty"` // "family", "couple", "friends", "solo"
	Travelers    []Traveler `json:"travelers"`
}

// Budget holds the trip budget. Zero amounts mean "not collected yet".
type Budget struct {
	TotalAmount           float64 `json:"totalAmount,omitempty"`
	PerPersonAmount       float64 `json:"perPersonAmount,omitempty"`
	Currency              string  `json:"currency"`
	Flexibility           string  `json:"flexibility"` // "tight", "moderate", "flexible", "luxury"
	IncludesFlights       bool    `json:"includesFlights"`
	IncludesAccommodation bool    `json:"includesAccommodation"`
	DailyEstimate         float64 `json:"dailyEstimate,omitempty"`
}

// Preferences holds the traveler's stated preferences.
type Preferences struct {
	Style            []string `json:"style"`         // "relaxation", "adventure", "cultural", ...
	Accommodation    []string `json:"accommodation"` // "hotel", "airbnb", "hostel", ...
	Interests        []string `json:"interests"`
	MustSee          []string `json:"mustSee"`
	MustAvoid        []string `json:"mustAvoid"`
	FoodRestrictions []string `json:"foodRestrictions,omitempty"`
	PacePreference   string   `json:"pacePreference"` // "relaxed", "moderate", "intensive"
	EarlyBird        bool     `json:"earlyBird"`
	FoodPriority     string   `json:"foodPriority"`     // "low", "medium", "high"
	ShoppingPriority string   `json:"shoppingPriority"` // "low", "medium", "high"
}

// Activity is one item in an itinerary day.
type Activity struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"` // "attraction", "restaurant", "transport", "hotel", "free_time", "other"
	StartTime       string  `json:"startTime,omitempty"` // HH:mm
	EndTime         string  `json:"endTime,omitempty"`   // HH:mm
	Location        string  `json:"location,omitempty"`
	EstimatedCost   float64 `json:"estimatedCost,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	BookingRequired bool    `json:"bookingRequired"`
	IsOptional      bool    `json:"isOptional"`
}

// ItineraryDay is one day of an itinerary.
type ItineraryDay struct {
	DayNumber          int        `json:"dayNumber"`
	Date               string     `json:"date,omitempty"` // ISO 8601
	Destination        string     `json:"destination"`
	Theme              string     `json:"theme,omitempty"`
	Activities         []Activity `json:"activities"`
	Notes              string     `json:"notes,omitempty"`
	EstimatedDailyCost float64    `json:"estimatedDailyCost,omitempty"`
}

// Itinerary is a full day-by-day plan, produced during the PLANNING phase.
type Itinerary struct {
	ID                 string         `json:"id"`
	Version            int            `json:"version"`
	Name               string         `json:"name"`
	TotalDays          int            `json:"totalDays"`
	Days               []ItineraryDay `json:"days"`
	TotalEstimatedCost float64        `json:"totalEstimatedCost"`
	Currency           string         `json:"currency"`
	Highlights         []string       `json:"highlights,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
}

// Booking is a reservation made during the BOOKING phase.
type Booking struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"` // "flight", "hotel", "car", "activity", "restaurant", "other"
	Provider         string    `json:"provider"`
	ConfirmationCode string    `json:"confirmationCode,omitempty"`
	Status           string    `json:"status"` // "pending", "confirmed", "cancelled"
	StartDateTime    string    `json:"startDateTime"`
	EndDateTime      string    `json:"endDateTime,omitempty"`
	Cost             float64   `json:"cost"`
	Currency         string    `json:"currency"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Trip is the central aggregate: one trip being planned by one owner.
// Substructures fill in progressively as the conversation advances;
// KnowledgeScore is derived from them and never set directly.
type Trip struct {
	ID      string `json:"tripId"`
	OwnerID string `json:"ownerId"`

	Name         string `json:"name,omitempty"`
	Status       Status `json:"status"`
	CurrentPhase Phase  `json:"currentPhase"`

	Destinations     []Destination `json:"destinations"`
	Dates            Dates         `json:"dates"`
	Travelers        Travelers     `json:"travelers"`
	Budget           Budget        `json:"budget"`
	Preferences      Preferences   `json:"preferences"`
	SpecialOccasions []string      `json:"specialOccasions,omitempty"` // "honeymoon", "birthday", ...

	Itinerary *Itinerary `json:"itinerary,omitempty"`
	Bookings  []Booking  `json:"bookings,omitempty"`

	KnowledgeScore  int      `json:"knowledgeScore"` // 0-100, derived
	CollectedFields []string `json:"collectedFields"`

	LastInteraction  time.Time `json:"lastInteraction"`
	InteractionCount int       `json:"interactionCount"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
