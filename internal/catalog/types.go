// Package catalog provides a client for the streaming catalog search
// API used to discover tracks.
package catalog

// searchResponse is the raw envelope returned by the song search
// endpoint.
type searchResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Total   int          `json:"total"`
		Results []songResult `json:"results"`
	} `json:"data"`
}

// songResult is a single song from search results.
type songResult struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Duration    int          `json:"duration"` // seconds
	Language    string       `json:"language"`
	Year        string       `json:"year"`
	Artists     artistCredit `json:"artists"`
	Image       []asset      `json:"image"`
	DownloadURL []asset      `json:"downloadUrl"`
}

// artistCredit holds the credited artists of a song.
type artistCredit struct {
	Primary []artistRef `json:"primary"`
}

type artistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// asset is a quality-tagged URL. The API lists assets in ascending
// quality order.
type asset struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
}
