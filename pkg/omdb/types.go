package omdb

// Rating is one entry of the "Ratings" list.
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// Movie is the detail record OMDb returns for id and title lookups. Series
// and episodes share the shape; the series-only fields are empty for movies.
type Movie struct {
	Title      string   `json:"Title"`
	Year       string   `json:"Year"`
	Rated      string   `json:"Rated"`
	Released   string   `json:"Released"`
	Runtime    string   `json:"Runtime"`
	Genre      string   `json:"Genre"`
	Director   string   `json:"Director"`
	Writer     string   `json:"Writer"`
	Actors     string   `json:"Actors"`
	Plot       string   `json:"Plot"`
	Language   string   `json:"Language"`
	Country    string   `json:"Country"`
	Awards     string   `json:"Awards"`
	Poster     string   `json:"Poster"`
	Ratings    []Rating `json:"Ratings"`
	Metascore  string   `json:"Metascore"`
	ImdbRating string   `json:"imdbRating"`
	ImdbVotes  string   `json:"imdbVotes"`
	ImdbID     string   `json:"imdbID"`
	Type       string   `json:"Type"`
	DVD        string   `json:"DVD"`
	BoxOffice  string   `json:"BoxOffice"`
	Production string   `json:"Production"`
	Website    string   `json:"Website"`

	TotalSeasons string `json:"totalSeasons"`
	Season       string `json:"Season"`
	Episode      string `json:"Episode"`
	SeriesID     string `json:"seriesID"`

	// Filled when the tomatoes filter is on.
	TomatoMeter  string `json:"tomatoMeter"`
	TomatoRating string `json:"tomatoRating"`
	TomatoURL    string `json:"tomatoURL"`

	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// SearchResult is one match of a free-text search.
type SearchResult struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

type SearchResults struct {
	Search       []SearchResult `json:"Search"`
	TotalResults string         `json:"totalResults"`
	Response     string         `json:"Response"`
	Error        string         `json:"Error"`
}
