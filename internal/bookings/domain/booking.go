package domain

// EventType buckets a calendar entry for the dashboard.
type EventType string

const (
	TypePhotography EventType = "photography"
	TypeRetainer    EventType = "retainer"
	TypePersonal    EventType = "personal"
	TypeMeeting     EventType = "meeting"
	TypeTravel      EventType = "travel"
)

// Event is one upcoming booking or commitment.
type Event struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Client         string    `json:"client"`
	Date           string    `json:"date"`
	EndDate        string    `json:"endDate,omitempty"`
	Time           string    `json:"time,omitempty"`
	EndTime        string    `json:"endTime,omitempty"`
	Location       string    `json:"location,omitempty"`
	Description    string    `json:"description,omitempty"`
	Type           EventType `json:"type"`
	CalendarSource string    `json:"calendarSource,omitempty"`
	AllDay         bool      `json:"allDay"`
}

// Result is the GET /api/bookings payload.
type Result struct {
	Events []Event `json:"events"`
	Live   bool    `json:"live"`
	Error  string  `json:"error,omitempty"`
}
