package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PageSize is the number of songs returned per page.
const PageSize = 20

// Search returns the requested page of songs whose artist or title contains
// query, ignoring case. Matches keep the order of songs.
//
// The query is not validated: an empty query matches everything. page is
// echoed in CurrentPage as given; a page below 1 or past the last page
// yields no results.
func Search(songs []Song, query string, page int) Page {
	// Caser keeps per-call state and must not be shared.
	lower := cases.Lower(language.Und)
	q := lower.String(query)

	var matches []Song
	for _, s := range songs {
		if strings.Contains(lower.String(s.Artist), q) || strings.Contains(lower.String(s.Title), q) {
			matches = append(matches, s)
		}
	}

	return Page{
		Results:     pageOf(matches, page),
		TotalPages:  (len(matches) + PageSize - 1) / PageSize,
		CurrentPage: page,
	}
}

// pageOf slices the 1-based page out of matches, clamped to its bounds.
func pageOf(matches []Song, page int) []Song {
	// Compare page counts before multiplying so huge pages cannot overflow.
	if page < 1 || page > (len(matches)+PageSize-1)/PageSize {
		return []Song{}
	}
	start := (page - 1) * PageSize
	end := min(start+PageSize, len(matches))

	out := make([]Song, end-start)
	copy(out, matches[start:end])
	return out
}
