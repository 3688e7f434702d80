package domain

type Classification string

const (
	Inside  Classification = "inside"
	Outside Classification = "outside"
)

type DisplayColor string

const (
	ColorIdle    DisplayColor = "#fff"
	ColorInside  DisplayColor = "#d4edda"
	ColorOutside DisplayColor = "#f8d7da"
)

type ProximityResult struct {
	DistanceMeters float64        `json:"distance_meters"`
	Classification Classification `json:"classification"`
	StatusMessage  string         `json:"status"`
	Color          DisplayColor   `json:"color"`
}

type Alert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Display is what the presentation surface currently shows.
type Display struct {
	Status string       `json:"status"`
	Color  DisplayColor `json:"color"`
	Alert  *Alert       `json:"alert,omitempty"`
}
