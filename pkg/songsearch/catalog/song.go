package catalog

// Song is one catalog entry. All three fields are non-empty for every Song
// returned by Parse.
type Song struct {
	Artist  string `json:"artist"`
	Title   string `json:"title"`
	VideoID string `json:"videoId"`
}

// Page is one page of search results.
type Page struct {
	Results     []Song `json:"results"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
}
