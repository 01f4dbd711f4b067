// Package server is the embedded HTTP surface spec.md §1 names as an
// external collaborator ("the embedded HTTP server and its handler
// dispatch"): it fetches an encoded tile, decodes it, runs the configured
// processor pipeline over each layer, re-encodes, and gzip-frames the
// response.
package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/tileforge/vtpost/internal/tilecoord"
	"github.com/tileforge/vtpost/pkg/mvtcodec"
	"github.com/tileforge/vtpost/pkg/vtpost"
)

// Fetcher retrieves the raw encoded bytes of a tile addressed by coord.
type Fetcher interface {
	Fetch(coord tilecoord.Coord) ([]byte, error)
}

// Renderer is the raster-rendering bridge spec.md §1 names as out of
// scope. Server ships a single passthrough implementation documenting the
// boundary; it performs no rendering.
type Renderer interface {
	Render(tile []byte) ([]byte, error)
}

// PassthroughRenderer returns the tile bytes unchanged. It exists so
// Server always has a Renderer to call without pulling in an actual
// rasterizer, which spec.md §1 explicitly scopes away from the core.
type PassthroughRenderer struct{}

func (PassthroughRenderer) Render(tile []byte) ([]byte, error) { return tile, nil }

// Server is a minimal gorilla/mux router exposing GET /{z}/{x}/{y}.{ext}.
type Server struct {
	fetcher    Fetcher
	renderer   Renderer
	processors map[string][]vtpost.Processor // by layer name; "" applies to every layer
	router     *mux.Router
}

// Config wires a Server's collaborators.
type Config struct {
	Fetcher    Fetcher
	Renderer   Renderer
	Processors map[string][]vtpost.Processor
}

// New builds a Server and registers its tile route.
func New(cfg Config) *Server {
	if cfg.Renderer == nil {
		cfg.Renderer = PassthroughRenderer{}
	}
	s := &Server{
		fetcher:    cfg.Fetcher,
		renderer:   cfg.Renderer,
		processors: cfg.Processors,
		router:     mux.NewRouter(),
	}
	s.router.HandleFunc("/{z:[0-9]+}/{x:[0-9]+}/{y:[0-9]+}.{ext}", s.handleTile).Methods(http.MethodGet)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func parseCoord(vars map[string]string) (tilecoord.Coord, error) {
	z, err := strconv.ParseUint(vars["z"], 10, 32)
	if err != nil {
		return tilecoord.Coord{}, err
	}
	x, err := strconv.ParseUint(vars["x"], 10, 32)
	if err != nil {
		return tilecoord.Coord{}, err
	}
	y, err := strconv.ParseUint(vars["y"], 10, 32)
	if err != nil {
		return tilecoord.Coord{}, err
	}
	return tilecoord.Coord{Z: uint32(z), X: uint32(x), Y: uint32(y)}, nil
}

func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.New()
	vars := mux.Vars(r)

	coord, err := parseCoord(vars)
	if err != nil {
		http.Error(w, "bad tile coordinate", http.StatusBadRequest)
		return
	}

	raw, err := s.fetcher.Fetch(coord)
	if err != nil {
		log.Printf("request %s: fetch %v: %v", reqID, coord, err)
		http.Error(w, "tile fetch failed", http.StatusBadGateway)
		return
	}

	layer, err := mvtcodec.DecodeLayer(raw)
	if err != nil {
		log.Printf("request %s: decode %v: %v", reqID, coord, err)
		http.Error(w, "tile decode failed", http.StatusInternalServerError)
		return
	}

	mapCtx := tilecoord.TileContext{Coord: coord}
	chain := append(append([]vtpost.Processor{}, s.processors[layer.Name]...), s.processors[""]...)
	if err := vtpost.Pipeline(layer, mapCtx, chain...); err != nil {
		log.Printf("request %s: process %v: %v", reqID, coord, err)
		http.Error(w, "tile processing failed", http.StatusInternalServerError)
		return
	}

	encoded := mvtcodec.EncodeLayer(layer, mvtcodec.DefaultExtent)
	rendered, err := s.renderer.Render(encoded)
	if err != nil {
		log.Printf("request %s: render %v: %v", reqID, coord, err)
		http.Error(w, "tile render failed", http.StatusInternalServerError)
		return
	}

	if err := writeGzipped(w, rendered); err != nil {
		log.Printf("request %s: write response: %v", reqID, err)
	}
}
