package data

import (
	"math"
)

// Filters holds every recognized search parameter for the game listing.
// Absent optional bounds are nil pointers (or empty strings for the date
// bounds, which are compared lexicographically as stored).
type Filters struct {
	Search   string   `json:"search"`
	Genre    string   `json:"genre"`
	Sort     string   `json:"sort"`
	Order    string   `json:"order"`
	Page     int      `json:"page"`
	PageSize int      `json:"limit"`
	PriceMin *float64 `json:"priceMin,omitempty"`
	PriceMax *float64 `json:"priceMax,omitempty"`
	DateMin  string   `json:"dateMin,omitempty"`
	DateMax  string   `json:"dateMax,omitempty"`
	ScoreMin *float64 `json:"scoreMin,omitempty"`
	ScoreMax *float64 `json:"scoreMax,omitempty"`
}

// Normalize clamps the paging values into a sane range. Out-of-range
// values are corrected rather than rejected.
func (f *Filters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
}

func (f Filters) limit() int {
	return f.PageSize
}

func (f Filters) offset() int {
	return (f.Page - 1) * f.PageSize
}

// Metadata struct for holding the pagination metadata, including the
// window of page numbers the front end renders as navigation links.
type Metadata struct {
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"totalPages"`
	TotalGames  int64 `json:"totalGames"`
	Pages       []int `json:"pages"`
	HasPrev     bool  `json:"hasPrev"`
	HasNext     bool  `json:"hasNext"`
}

// calculateMetadata calculates the appropriate pagination metadata values
// given the total number of records, current page, and page size values.
// The navigation window spans two pages either side of the current page,
// clipped to [1, totalPages].
func calculateMetadata(totalGames int64, page, pageSize int) Metadata {
	if page < 1 {
		page = 1
	}

	if totalGames == 0 {
		return Metadata{
			CurrentPage: page,
			Limit:       pageSize,
			Pages:       []int{},
		}
	}

	totalPages := int(math.Ceil(float64(totalGames) / float64(pageSize)))

	first := page - 2
	if first < 1 {
		first = 1
	}
	last := page + 2
	if last > totalPages {
		last = totalPages
	}

	pages := make([]int, 0, 5)
	for p := first; p <= last; p++ {
		pages = append(pages, p)
	}

	return Metadata{
		CurrentPage: page,
		Limit:       pageSize,
		TotalPages:  totalPages,
		TotalGames:  totalGames,
		Pages:       pages,
		HasPrev:     page > 1,
		HasNext:     page < totalPages,
	}
}
