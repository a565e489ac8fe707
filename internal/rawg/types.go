package rawg

import "strings"

// Game represents a single game record from a RAWG search.
type Game struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Released        string   `json:"released"`
	Rating          float64  `json:"rating"`
	Metacritic      *int     `json:"metacritic"`
	BackgroundImage string   `json:"background_image"`
	Platforms       []string `json:"platforms"`
	Genres          []string `json:"genres"`
	Developers      []string `json:"developers"`
}

// Details represents the extended record returned by the game detail endpoint.
type Details struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	DescriptionRaw  string   `json:"description_raw"`
	Released        string   `json:"released"`
	Rating          float64  `json:"rating"`
	Metacritic      *int     `json:"metacritic"`
	BackgroundImage string   `json:"background_image"`
	Website         string   `json:"website"`
	ESRBRating      string   `json:"esrb_rating"`
	Platforms       []string `json:"platforms"`
	Genres          []string `json:"genres"`
	Developers      []string `json:"developers"`
	Publishers      []string `json:"publishers"`
}

// PlatformList returns the platforms as a comma-joined string.
func (g Game) PlatformList() string {
	return strings.Join(g.Platforms, ", ")
}

// GenreList returns the genres as a comma-joined string.
func (g Game) GenreList() string {
	return strings.Join(g.Genres, ", ")
}

// DeveloperList returns the developers as a comma-joined string.
func (g Game) DeveloperList() string {
	return strings.Join(g.Developers, ", ")
}

// PlatformList returns the platforms as a comma-joined string.
func (d Details) PlatformList() string {
	return strings.Join(d.Platforms, ", ")
}

// GenreList returns the genres as a comma-joined string.
func (d Details) GenreList() string {
	return strings.Join(d.Genres, ", ")
}

// DeveloperList returns the developers as a comma-joined string.
func (d Details) DeveloperList() string {
	return strings.Join(d.Developers, ", ")
}

// PublisherList returns the publishers as a comma-joined string.
func (d Details) PublisherList() string {
	return strings.Join(d.Publishers, ", ")
}

// cacheKey normalizes a search term for cache lookups.
func cacheKey(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// wire types shared by search and details decoding

type namedRef struct {
	Name string `json:"name"`
}

type platformRef struct {
	Platform namedRef `json:"platform"`
}

func platformNames(refs []platformRef) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Platform.Name)
	}
	return names
}

func refNames(refs []namedRef) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return names
}
