package server

import (
	"encoding/json"
	"net/http"
)

// WithTileJSON registers a metadata endpoint at /index.json describing the
// tile route this Server serves.
func (s *Server) WithTileJSON(doc TileJSON) *Server {
	s.router.HandleFunc("/index.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(doc); err != nil {
			http.Error(w, "encode tilejson failed", http.StatusInternalServerError)
		}
	}).Methods(http.MethodGet)
	return s
}
