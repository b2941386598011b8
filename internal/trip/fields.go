package trip

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Field identifies one updatable piece of trip information. The set is
// closed: values outside it are treated as a no-op by the store, so new
// field names coming from the conversation side degrade gracefully.
type Field string

const (
	FieldDestination       Field = "destination"
	FieldStartDate         Field = "startDate"
	FieldEndDate           Field = "endDate"
	FieldDurationDays      Field = "durationDays"
	FieldTravelersCount    Field = "travelersCount"
	FieldAdultsCount       Field = "adultsCount"
	FieldChildrenCount     Field = "childrenCount"
	FieldTotalBudget       Field = "totalBudget"
	FieldPerPersonBudget   Field = "perPersonBudget"
	FieldTripStyle         Field = "tripStyle"
	FieldInterests         Field = "interests"
	FieldAccommodationType Field = "accommodationType"
	FieldFoodRestrictions  Field = "foodRestrictions"
	FieldSpecialOccasion   Field = "specialOccasion"
	FieldTripName          Field = "tripName"
)

// fieldUpdaters maps each known field to its update function.
var fieldUpdaters = map[Field]func(t *Trip, value any) error{
	FieldDestination: func(t *Trip, value any) error {
		name, err := asString(value)
		if err != nil {
			return err
		}
		// Append-only: destinations are a log of mentions, never deduped.
		t.Destinations = append(t.Destinations, Destination{
			ID:        "dest_" + uuid.New().String(),
			Name:      name,
			IsPrimary: true,
			Priority:  1,
		})
		return nil
	},
	FieldStartDate: func(t *Trip, value any) error {
		s, err := asString(value)
		if err != nil {
			return err
		}
		t.Dates.StartDate = s
		return nil
	},
	FieldEndDate: func(t *Trip, value any) error {
		s, err := asString(value)
		if err != nil {
			return err
		}
		t.Dates.EndDate = s
		return nil
	},
	FieldDurationDays: func(t *Trip, value any) error {
		n, err := asInt(value)
		if err != nil {
			return err
		}
		t.Dates.DurationDays = n
		return nil
	},
	FieldTravelersCount: func(t *Trip, value any) error {
		n, err := asInt(value)
		if err != nil {
			return err
		}
		t.Travelers.Count = n
		return nil
	},
	FieldAdultsCount: func(t *Trip, value any) error {
		n, err := asInt(value)
		if err != nil {
			return err
		}
		t.Travelers.Adults = n
		return nil
	},
	FieldChildrenCount: func(t *Trip, value any) error {
		n, err := asInt(value)
		if err != nil {
			return err
		}
		t.Travelers.Children = n
		return nil
	},
	FieldTotalBudget: func(t *Trip, value any) error {
		f, err := asFloat(value)
		if err != nil {
			return err
		}
		t.Budget.TotalAmount = f
		return nil
	},
	FieldPerPersonBudget: func(t *Trip, value any) error {
		f, err := asFloat(value)
		if err != nil {
			return err
		}
		t.Budget.PerPersonAmount = f
		return nil
	},
	FieldTripStyle: func(t *Trip, value any) error {
		t.Preferences.Style = append(t.Preferences.Style, asStringList(value)...)
		return nil
	},
	FieldInterests: func(t *Trip, value any) error {
		t.Preferences.Interests = append(t.Preferences.Interests, asStringList(value)...)
		return nil
	},
	FieldAccommodationType: func(t *Trip, value any) error {
		t.Preferences.Accommodation = append(t.Preferences.Accommodation, asStringList(value)...)
		return nil
	},
	FieldFoodRestrictions: func(t *Trip, value any) error {
		// Restrictions replace rather than accumulate: the latest statement
		// is the authoritative list.
		t.Preferences.FoodRestrictions = asStringList(value)
		return nil
	},
	FieldSpecialOccasion: func(t *Trip, value any) error {
		t.SpecialOccasions = append(t.SpecialOccasions, asStringList(value)...)
		return nil
	},
	FieldTripName: func(t *Trip, value any) error {
		s, err := asString(value)
		if err != nil {
			return err
		}
		t.Name = s
		return nil
	},
}

// KnownFields returns the canonical list of updatable field names.
func KnownFields() []Field {
	return []Field{
		FieldDestination, FieldStartDate, FieldEndDate, FieldDurationDays,
		FieldTravelersCount, FieldAdultsCount, FieldChildrenCount,
		FieldTotalBudget, FieldPerPersonBudget,
		FieldTripStyle, FieldInterests, FieldAccommodationType,
		FieldFoodRestrictions, FieldSpecialOccasion, FieldTripName,
	}
}

// ApplyField applies a field update to the trip in place. It returns false
// (and no error) for unknown field names, leaving the trip untouched; the
// caller decides how loudly to report that. It does not rescore.
func ApplyField(t *Trip, field Field, value any) (bool, error) {
	update, ok := fieldUpdaters[field]
	if !ok {
		return false, nil
	}
	if err := update(t, value); err != nil {
		return true, fmt.Errorf("updating field %s: %w", field, err)
	}
	markCollected(t, field)
	return true, nil
}

// markCollected records the field name in CollectedFields once.
func markCollected(t *Trip, field Field) {
	for _, f := range t.CollectedFields {
		if f == string(field) {
			return
		}
	}
	t.CollectedFields = append(t.CollectedFields, string(field))
}

func asString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("expected string, got %T", value)
	}
}

func asInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64: // JSON numbers decode as float64
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("parsing %q as integer: %w", v, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", value)
	}
}

func asFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing %q as number: %w", v, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}

// asStringList normalizes a scalar or a list into a string slice. Non-string
// list elements are formatted rather than rejected.
func asStringList(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	case string:
		return []string{v}
	default:
		return []string{fmt.Sprint(v)}
	}
}
