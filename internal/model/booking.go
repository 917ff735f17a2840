package model

// Booking holds every reservation of one user, grouped by date.  A
// user has at most one booking record.  Within the record each date
// appears once and each movie id appears at most once per date.  An
// empty Dates slice is a valid state; it is not pruned.
//
// Fields:
//  UserID – owner of the booking (users[].id).
//  Dates  – booked dates in insertion order.
type Booking struct {
	UserID string       `json:"userid"` // bookings[].userid
	Dates  []BookedDate `json:"dates"`  // bookings[].dates
}

// BookedDate is one date of a booking together with the movie ids
// booked for it.
type BookedDate struct {
	Date   string   `json:"date"`   // bookings[].dates[].date
	Movies []string `json:"movies"` // bookings[].dates[].movies
}

// DateIndex returns the position of date within the booking or -1.
func (b *Booking) DateIndex(date string) int {
	for i := range b.Dates {
		if b.Dates[i].Date == date {
			return i
		}
	}
	return -1
}

// Has reports whether movieID is booked on date.
func (b *Booking) Has(date, movieID string) bool {
	i := b.DateIndex(date)
	return i >= 0 && containsID(b.Dates[i].Movies, movieID)
}

// Has reports whether movieID is booked on this date.
func (d BookedDate) Has(movieID string) bool {
	return containsID(d.Movies, movieID)
}

// RemoveMovie drops movieID from the date and reports whether it was
// present.  The date itself is kept even when it becomes empty.
func (d *BookedDate) RemoveMovie(movieID string) bool {
	var ok bool
	d.Movies, ok = removeID(d.Movies, movieID)
	return ok
}

// Clone returns a copy of the booking that shares no slices with b.
func (b Booking) Clone() Booking {
	out := Booking{UserID: b.UserID, Dates: make([]BookedDate, len(b.Dates))}
	for i, d := range b.Dates {
		out.Dates[i] = BookedDate{Date: d.Date, Movies: cloneIDs(d.Movies)}
	}
	return out
}

// BookingDetails is a booking with the user resolved and every movie
// id expanded.  Expansion failures are reported inline.
type BookingDetails struct {
	UserID    string        `json:"userid"`
	User      *User         `json:"user,omitempty"`
	UserError string        `json:"user_error,omitempty"`
	Dates     []DateDetails `json:"dates"`
}

// BookingOutcome tells which branch of the create pipeline applied.
type BookingOutcome string

const (
	OutcomeMovieAdded     BookingOutcome = "movie_added"     // movie appended to an existing date
	OutcomeDateAdded      BookingOutcome = "date_added"      // new date appended to an existing booking
	OutcomeBookingCreated BookingOutcome = "booking_created" // first booking of the user
)

// BookingResult is returned by a successful booking creation.
type BookingResult struct {
	Outcome BookingOutcome `json:"outcome"`
	Booking Booking        `json:"booking"`
}
