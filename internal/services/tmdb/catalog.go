package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

// validMediaType guards path construction: only "movie" and "tv" are real
// TMDB path segments.
func validMediaType(mediaType string) error {
	if mediaType != "movie" && mediaType != "tv" {
		return fmt.Errorf("unsupported media type: %q", mediaType)
	}
	return nil
}

// Trending returns this week's trending titles. mediaType may be "movie",
// "tv" or "all".
func (c *Client) Trending(ctx context.Context, mediaType string, page int) (*Response, error) {
	if mediaType != "all" {
		if err := validMediaType(mediaType); err != nil {
			return nil, err
		}
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var resp Response
	if err := c.get(ctx, "/trending/"+mediaType+"/week", params, &resp); err != nil {
		return nil, fmt.Errorf("trending fetch failed: %w", err)
	}
	return &resp, nil
}

// Search runs a multi search (movies and TV shows) for the given query.
func (c *Client) Search(ctx context.Context, query string, page int) (*Response, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")

	var resp Response
	if err := c.get(ctx, "/search/multi", params, &resp); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return &resp, nil
}

// DiscoverByGenre lists titles of the given media type carrying a genre,
// sorted by popularity.
func (c *Client) DiscoverByGenre(ctx context.Context, mediaType string, genreID, page int) (*Response, error) {
	if err := validMediaType(mediaType); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", "popularity.desc")
	params.Set("page", strconv.Itoa(page))

	var resp Response
	if err := c.get(ctx, "/discover/"+mediaType, params, &resp); err != nil {
		return nil, fmt.Errorf("discover fetch failed: %w", err)
	}
	return &resp, nil
}

// TopRatedCombined merges the top-rated movie and TV lists into a single
// list of up to limit entries ordered by vote average. Each entry gets its
// media_type stamped since the per-type endpoints omit it.
func (c *Client) TopRatedCombined(ctx context.Context, limit int) ([]Movie, error) {
	var movies, shows Response
	if err := c.get(ctx, "/movie/top_rated", nil, &movies); err != nil {
		return nil, fmt.Errorf("top rated movies fetch failed: %w", err)
	}
	if err := c.get(ctx, "/tv/top_rated", nil, &shows); err != nil {
		return nil, fmt.Errorf("top rated tv fetch failed: %w", err)
	}

	take := func(results []Movie, mediaType string) []Movie {
		n := len(results)
		if n > limit/2 {
			n = limit / 2
		}
		out := make([]Movie, n)
		copy(out, results[:n])
		for i := range out {
			out[i].MediaType = mediaType
		}
		return out
	}

	combined := append(take(movies.Results, "movie"), take(shows.Results, "tv")...)
	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].VoteAverage > combined[j].VoteAverage
	})

	if len(combined) > limit {
		combined = combined[:limit]
	}
	return combined, nil
}

// KDramas lists popular Korean TV dramas: a discover/tv query restricted to
// the KR region, most popular first. limit caps how much of the page is
// returned; entries get media_type stamped since discover omits it.
func (c *Client) KDramas(ctx context.Context, page, limit int) ([]Movie, error) {
	params := url.Values{}
	params.Set("region", "KR")
	params.Set("sort_by", "popularity.desc")
	params.Set("page", strconv.Itoa(page))

	var resp Response
	if err := c.get(ctx, "/discover/tv", params, &resp); err != nil {
		return nil, fmt.Errorf("kdramas fetch failed: %w", err)
	}

	results := resp.Results
	if len(results) > limit {
		results = results[:limit]
	}
	out := make([]Movie, len(results))
	copy(out, results)
	for i := range out {
		out[i].MediaType = "tv"
	}
	return out, nil
}

// Recent returns recently released titles: now-playing movies or currently
// airing TV shows.
func (c *Client) Recent(ctx context.Context, mediaType string, page int) (*Response, error) {
	if err := validMediaType(mediaType); err != nil {
		return nil, err
	}

	endpoint := "/movie/now_playing"
	if mediaType == "tv" {
		endpoint = "/tv/on_the_air"
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var resp Response
	if err := c.get(ctx, endpoint, params, &resp); err != nil {
		return nil, fmt.Errorf("recent fetch failed: %w", err)
	}
	return &resp, nil
}

// Details returns the full record for one title, with recommendations
// appended so the detail page needs a single round trip.
func (c *Client) Details(ctx context.Context, mediaType string, id int) (*Movie, error) {
	if err := validMediaType(mediaType); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("append_to_response", "recommendations")

	var movie Movie
	if err := c.get(ctx, "/"+mediaType+"/"+strconv.Itoa(id), params, &movie); err != nil {
		return nil, fmt.Errorf("details fetch failed: %w", err)
	}
	return &movie, nil
}

// Related returns titles recommended alongside the given one.
func (c *Client) Related(ctx context.Context, mediaType string, id int) (*Response, error) {
	if err := validMediaType(mediaType); err != nil {
		return nil, err
	}

	var resp Response
	if err := c.get(ctx, "/"+mediaType+"/"+strconv.Itoa(id)+"/recommendations", nil, &resp); err != nil {
		return nil, fmt.Errorf("related fetch failed: %w", err)
	}
	return &resp, nil
}
