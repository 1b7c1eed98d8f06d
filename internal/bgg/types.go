package bgg

// SearchResult is one hit from the catalog search endpoint. The search API
// carries no thumbnails, so ThumbnailURL is always null; the field stays for
// parity with the detail shape consumed by the same client code.
type SearchResult struct {
	BGGID         int64   `json:"bgg_id"`
	Name          string  `json:"name"`
	YearPublished *int    `json:"year_published"`
	ThumbnailURL  *string `json:"thumbnail_url"`
}

// GameDetails carries a catalog record mapped to the local game shape,
// ready to be submitted to the collection as-is. The list fields are
// JSON-encoded string arrays, matching the games table columns.
type GameDetails struct {
	BGGID         int64    `json:"bgg_id"`
	Name          string   `json:"name"`
	YearPublished *int     `json:"year_published"`
	MinPlayers    *int     `json:"min_players"`
	MaxPlayers    *int     `json:"max_players"`
	MinPlaytime   *int     `json:"min_playtime"`
	MaxPlaytime   *int     `json:"max_playtime"`
	Difficulty    *float64 `json:"difficulty"`
	Description   *string  `json:"description"`
	ImageURL      *string  `json:"image_url"`
	ThumbnailURL  *string  `json:"thumbnail_url"`
	Categories    *string  `json:"categories"`
	Mechanics     *string  `json:"mechanics"`
	Designers     *string  `json:"designers"`
	Publishers    *string  `json:"publishers"`
}

// valueAttr matches BGG's ubiquitous <tag value="..."/> elements.
type valueAttr struct {
	Value string `xml:"value,attr"`
}

type nameElement struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type linkElement struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type searchResponse struct {
	Items []searchItem `xml:"item"`
}

type searchItem struct {
	ID            int64         `xml:"id,attr"`
	Names         []nameElement `xml:"name"`
	YearPublished *valueAttr    `xml:"yearpublished"`
}

type thingResponse struct {
	Items []thingItem `xml:"item"`
}

type thingItem struct {
	ID            int64         `xml:"id,attr"`
	Names         []nameElement `xml:"name"`
	Description   string        `xml:"description"`
	YearPublished *valueAttr    `xml:"yearpublished"`
	MinPlayers    *valueAttr    `xml:"minplayers"`
	MaxPlayers    *valueAttr    `xml:"maxplayers"`
	MinPlaytime   *valueAttr    `xml:"minplaytime"`
	MaxPlaytime   *valueAttr    `xml:"maxplaytime"`
	Image         string        `xml:"image"`
	Thumbnail     string        `xml:"thumbnail"`
	Links         []linkElement `xml:"link"`
	Statistics    struct {
		Ratings struct {
			AverageWeight *valueAttr `xml:"averageweight"`
		} `xml:"ratings"`
	} `xml:"statistics"`
}
