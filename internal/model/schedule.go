package model

// ScheduleEntry lists the movies playing on a calendar date.  There is
// at most one entry per date.  Movies is logically a set and never
// holds the same id twice, but keeps insertion order.
//
// Fields:
//  Date   – calendar date, used verbatim as the key (e.g. "2024-01-01").
//  Movies – movie ids scheduled for the date.
type ScheduleEntry struct {
	Date   string   `json:"date"`   // schedule[].date
	Movies []string `json:"movies"` // schedule[].movies
}

// Has reports whether movieID is scheduled on this entry's date.
func (e ScheduleEntry) Has(movieID string) bool {
	return containsID(e.Movies, movieID)
}

// RemoveMovie drops movieID from the schedule entry and reports
// whether it was present.
func (e *ScheduleEntry) RemoveMovie(movieID string) bool {
	var ok bool
	e.Movies, ok = removeID(e.Movies, movieID)
	return ok
}

// Clone returns a copy of the entry that shares no slices with e.
func (e ScheduleEntry) Clone() ScheduleEntry {
	return ScheduleEntry{Date: e.Date, Movies: cloneIDs(e.Movies)}
}

// DateDetails is a date with its movie ids expanded to full records.
type DateDetails struct {
	Date   string        `json:"date"`
	Movies []MovieDetail `json:"movies"`
}

// MovieDates lists every date on which a movie is scheduled.
type MovieDates struct {
	MovieID string   `json:"movie_id"`
	Dates   []string `json:"dates"`
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// cloneIDs copies ids; an empty input yields an empty, non-nil slice so
// it encodes as [] rather than null.
func cloneIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func removeID(ids []string, id string) ([]string, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), true
		}
	}
	return ids, false
}
