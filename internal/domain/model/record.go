// Package model contains domain models passed between layers.
package model

// ResultRecord is one competitor's result row in one event, as read from the
// results export.
type ResultRecord struct {
	PersonID        string // WCA id, e.g. "2009ZEMD01"
	EventID         string // event code, e.g. "333"
	PersonCountryID string // country id, e.g. "US"
	Best            int32  // encoded best result, see format.FormatBestResult
	PersonName      string
}

// RankRecord is a competitor's rank within their country for an event.
type RankRecord struct {
	PersonID    string
	EventID     string
	CountryRank float64 // NaN when the source cell was empty
	Best        int32
}

// UnifiedRecord is the inner join of ResultRecord and RankRecord on
// (PersonID, EventID, Best).
type UnifiedRecord struct {
	PersonID        string
	EventID         string
	PersonCountryID string
	Best            int32
	PersonName      string
	CountryRank     float64
}

// JoinKey identifies the columns both datasets are joined on.
type JoinKey struct {
	PersonID string
	EventID  string
	Best     int32
}

// Key returns the join key of a result row.
func (r ResultRecord) Key() JoinKey {
	return JoinKey{PersonID: r.PersonID, EventID: r.EventID, Best: r.Best}
}

// Key returns the join key of a rank row.
func (r RankRecord) Key() JoinKey {
	return JoinKey{PersonID: r.PersonID, EventID: r.EventID, Best: r.Best}
}

// Key returns the join key a unified row was built from.
func (u UnifiedRecord) Key() JoinKey {
	return JoinKey{PersonID: u.PersonID, EventID: u.EventID, Best: u.Best}
}
