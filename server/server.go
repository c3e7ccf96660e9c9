// Package server exposes the harmonic engine over HTTP for UI frontends:
// diatonic chords, borrowed chords and the modifier catalog as JSON.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/chordium/chordium"
	"github.com/chordium/chordium/modifier"
	"github.com/chordium/chordium/theory"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type (
	Server struct {
		log *zap.Logger
	}

	chordJSON struct {
		Root      string `json:"root"`
		Intervals []int  `json:"intervals"`
		Numeral   string `json:"numeral"`
		Function  string `json:"function"`
		Name      string `json:"name"`
	}

	borrowedJSON struct {
		chordJSON
		Mood string `json:"mood"`
	}

	modifierJSON struct {
		Label    string `json:"label"`
		Category string `json:"category"`
	}
)

func New(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{log: log}
}

// Handler returns the routed handler with permissive CORS, so a browser
// frontend served from elsewhere can query it.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/v1/chords", s.handleChords).Methods("GET")
	router.HandleFunc("/v1/borrowed", s.handleBorrowed).Methods("GET")
	router.HandleFunc("/v1/modifiers", s.handleModifiers).Methods("GET")
	return cors.Default().Handler(router)
}

// keyMode reads and validates the key and mode query parameters, defaulting
// to C major.
func (s *Server) keyMode(w http.ResponseWriter, r *http.Request) (string, theory.Mode, bool) {
	key := r.URL.Query().Get("key")
	if key == "" {
		key = "C"
	}
	if _, err := theory.ChromaticIndex(key); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", "", false
	}
	modeName := r.URL.Query().Get("mode")
	if modeName == "" {
		modeName = "major"
	}
	mode, err := theory.ParseMode(modeName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", "", false
	}
	return key, mode, true
}

func (s *Server) handleChords(w http.ResponseWriter, r *http.Request) {
	key, mode, ok := s.keyMode(w, r)
	if !ok {
		return
	}
	chords, err := theory.ScaleChords(key, mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res := make([]chordJSON, len(chords))
	for i, c := range chords {
		res[i] = toChordJSON(c)
	}
	s.writeJSON(w, res)
}

func (s *Server) handleBorrowed(w http.ResponseWriter, r *http.Request) {
	key, mode, ok := s.keyMode(w, r)
	if !ok {
		return
	}
	chords, err := theory.BorrowedChords(key, mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res := make([]borrowedJSON, len(chords))
	for i, c := range chords {
		res[i] = borrowedJSON{chordJSON: toChordJSON(c.Chord), Mood: c.Mood.String()}
	}
	s.writeJSON(w, res)
}

func (s *Server) handleModifiers(w http.ResponseWriter, r *http.Request) {
	res := make([]modifierJSON, len(modifier.Catalog))
	for i, m := range modifier.Catalog {
		res[i] = modifierJSON{Label: m.Label, Category: m.Category.String()}
	}
	s.writeJSON(w, res)
}

func toChordJSON(c chordium.Chord) chordJSON {
	return chordJSON{
		Root:      c.Root,
		Intervals: c.Intervals,
		Numeral:   c.Numeral,
		Function:  c.Function.String(),
		Name:      theory.ChordName(c.Root, c.Intervals),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("cannot encode response", zap.Error(err))
	}
}
