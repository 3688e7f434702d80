package domain

type TransitionKind string

const (
	TransitionEnter TransitionKind = "enter"
	TransitionExit  TransitionKind = "exit"
)

type ErrorInfo struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *ErrorInfo) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// TransitionEvent is what the geofencing service hands to a task handler.
// When Error is set, Kind and Region carry no meaning.
type TransitionEvent struct {
	Kind   TransitionKind `json:"event_type"`
	Region Region         `json:"region"`
	Error  *ErrorInfo     `json:"error,omitempty"`
}

type TransitionAlert struct {
	ID        string         `json:"id"`
	RegionID  string         `json:"region_id"`
	Event     TransitionKind `json:"event"`
	Message   string         `json:"message"`
	Timestamp int64          `json:"timestamp"`
}
