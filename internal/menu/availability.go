package menu

// Availability is the display state of an item at a given instant.
type Availability string

const (
	StatusAvailable      Availability = "available"
	StatusUnavailable    Availability = "unavailable"
	StatusTimeRestricted Availability = "time_restricted"
)

// Schedule is the availability gate shared by foods and toppings: a manual
// on/off flag plus an optional daily time window. Both bounds absent means
// the flag alone governs.
type Schedule struct {
	Available bool       `json:"is_available"`
	From      *ClockTime `json:"available_from"`
	To        *ClockTime `json:"available_to"`
}

// IsAvailableAt evaluates the schedule at the given time of day.
//
// A window with From > To spans midnight: 22:00-02:00 covers late evening
// and the small hours. One-sided bounds act as simple lower/upper limits.
func (s Schedule) IsAvailableAt(now ClockTime) bool {
	if !s.Available {
		return false
	}
	switch {
	case s.From != nil && s.To != nil:
		if !s.From.After(*s.To) {
			return !now.Before(*s.From) && !now.After(*s.To)
		}
		// overnight window
		return !now.Before(*s.From) || !now.After(*s.To)
	case s.From != nil:
		return !now.Before(*s.From)
	case s.To != nil:
		return !now.After(*s.To)
	default:
		return true
	}
}

// StatusAt distinguishes an item switched off by the operator from one that
// is merely outside its window right now.
func (s Schedule) StatusAt(now ClockTime) Availability {
	if !s.Available {
		return StatusUnavailable
	}
	if s.IsAvailableAt(now) {
		return StatusAvailable
	}
	return StatusTimeRestricted
}

// Windowed reports whether any time-of-day bound is set.
func (s Schedule) Windowed() bool {
	return s.From != nil || s.To != nil
}
