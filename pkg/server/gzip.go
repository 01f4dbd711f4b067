package server

import (
	"net/http"

	"github.com/klauspost/compress/gzip"
)

// writeGzipped frames body as a gzip-compressed response body, the wire
// framing spec.md §1 names as an external collaborator.
func writeGzipped(w http.ResponseWriter, body []byte) error {
	w.Header().Set("Content-Type", "application/vnd.mapbox-vector-tile")
	w.Header().Set("Content-Encoding", "gzip")
	w.WriteHeader(http.StatusOK)

	gz, err := gzip.NewWriterLevel(w, gzip.BestSpeed)
	if err != nil {
		return err
	}
	defer gz.Close()

	_, err = gz.Write(body)
	return err
}
