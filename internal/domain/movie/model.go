package movie

// Movie is a record of the local movie database, keyed by IMDb id.
type Movie struct {
	ID           string
	Year         int
	Duration     int
	FilmAffinity int
	Titles       []string
	Directors    []string
}

// SearchFilter narrows title and director searches. Bounds are exclusive and
// a zero value disables the bound.
type SearchFilter struct {
	MinYear     int
	MaxYear     int
	MinDuration int
	MaxDuration int
}

// Query describes what is known of a screening when looking for its movie.
type Query struct {
	Titles    []string
	Directors []string
	Year      int
	Duration  int
	// YearGap widens the year window on both sides. Zero means 1.
	YearGap int
	// FullMatch forces title and director hits to agree.
	FullMatch bool
}

const durationGap = 10

// Filter turns q into the exclusive search window.
func (q Query) Filter() SearchFilter {
	var f SearchFilter
	if q.Year > 0 {
		gap := q.YearGap
		if gap <= 0 {
			gap = 1
		}
		f.MinYear = q.Year - gap
		f.MaxYear = q.Year + gap
	}
	if q.Duration > 0 {
		f.MinDuration = q.Duration - durationGap
		f.MaxDuration = q.Duration + durationGap
	}
	return f
}
