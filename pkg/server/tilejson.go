package server

// TileJSON is the minimal subset of the TileJSON 3.0.0 metadata document
// spec.md §1 names as out of scope beyond this fixed shape: enough for a
// client to discover the tile URL template and zoom bounds, nothing more
// (no vector_layers schema introspection, no attribution/legend fields).
type TileJSON struct {
	TileJSONVersion string   `json:"tilejson"`
	Name            string   `json:"name"`
	Tiles           []string `json:"tiles"`
	MinZoom         uint32   `json:"minzoom"`
	MaxZoom         uint32   `json:"maxzoom"`
}

// NewTileJSON builds the document describing a tile endpoint reachable at
// urlTemplate (a "{z}/{x}/{y}" pattern).
func NewTileJSON(name, urlTemplate string, minZoom, maxZoom uint32) TileJSON {
	return TileJSON{
		TileJSONVersion: "3.0.0",
		Name:            name,
		Tiles:           []string{urlTemplate},
		MinZoom:         minZoom,
		MaxZoom:         maxZoom,
	}
}
