// Package types contains common types used across the application
package types

// Profile is the display form of a single ranked competitor.
type Profile struct {
	Name        string  `json:"name"`
	PersonID    string  `json:"person_id"`
	EventID     string  `json:"event_id"`
	Event       string  `json:"event"`
	Country     string  `json:"country"`
	Rank        string  `json:"rank"`
	CountryRank float64 `json:"country_rank"`
	BestResult  string  `json:"best_result"`
	Best        int32   `json:"best"`
}

// EventOption pairs an event id with its display name
type EventOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
