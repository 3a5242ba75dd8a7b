package tmdb

import "strconv"

// Genre is a TMDB genre tag
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie is a single catalog entry as returned by TMDB. Movies carry Title
// and ReleaseDate; TV shows carry Name and FirstAirDate. The helpers below
// paper over the difference.
type Movie struct {
	ID            int     `json:"id"`
	Title         string  `json:"title,omitempty"`
	Name          string  `json:"name,omitempty"`
	OriginalTitle string  `json:"original_title,omitempty"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	ReleaseDate   string  `json:"release_date,omitempty"`
	FirstAirDate  string  `json:"first_air_date,omitempty"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	Popularity    float64 `json:"popularity"`
	GenreIDs      []int   `json:"genre_ids,omitempty"`
	Genres        []Genre `json:"genres,omitempty"`
	MediaType     string  `json:"media_type,omitempty"`
	Runtime       int     `json:"runtime,omitempty"`
	Status        string  `json:"status,omitempty"`

	Recommendations *Response `json:"recommendations,omitempty"`
}

// Response is a paginated TMDB list response
type Response struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// DisplayTitle returns the movie title or, for TV shows, the show name.
func (m *Movie) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	if m.Name != "" {
		return m.Name
	}
	return m.OriginalTitle
}

// ReleaseYear returns the release year as an integer, or 0 when the date is
// absent or unparsable.
func (m *Movie) ReleaseYear() int {
	date := m.ReleaseDate
	if date == "" {
		date = m.FirstAirDate
	}
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
