package model

// Movie describes a film known to the movies service.  The ID is the
// primary key; Title is treated as a secondary lookup key even though
// nothing guarantees it is unique.
//
// Fields:
//  ID       – unique movie identifier.
//  Title    – movie title.
//  Rating   – numeric rating (e.g. 7.4).
//  Director – director name.
type Movie struct {
	ID       string  `json:"id"`       // movies[].id
	Title    string  `json:"title"`    // movies[].title
	Rating   float64 `json:"rating"`   // movies[].rating
	Director string  `json:"director"` // movies[].director
}

// MovieDetail is a movie materialized during detail expansion.  When
// the lookup fails the record only carries the movie id and Error.
type MovieDetail struct {
	ID       string   `json:"id"`
	Title    string   `json:"title,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	Director string   `json:"director,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// DetailFromMovie converts a full movie record into its detail form.
func DetailFromMovie(m Movie) MovieDetail {
	rating := m.Rating
	return MovieDetail{ID: m.ID, Title: m.Title, Rating: &rating, Director: m.Director}
}

// MovieDetailError builds the placeholder used when a movie cannot be
// resolved.
func MovieDetailError(id, reason string) MovieDetail {
	return MovieDetail{ID: id, Error: reason}
}
