package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	New(nil).Handler().ServeHTTP(w, req)
	return w
}

func TestChords(t *testing.T) {
	w := get(t, "/v1/chords?key=C&mode=major")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var chords []chordJSON
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &chords))
	assert.Len(t, chords, 7)
	assert.Equal(t, "C", chords[0].Root)
	assert.Equal(t, "I", chords[0].Numeral)
	assert.Equal(t, "tonic", chords[0].Function)
	assert.Equal(t, "C", chords[0].Name)
	assert.Equal(t, "vii°", chords[6].Numeral)
	assert.Equal(t, "Bdim", chords[6].Name)
}

func TestChordsDefaultsToCMajor(t *testing.T) {
	w := get(t, "/v1/chords")
	assert.Equal(t, http.StatusOK, w.Code)
	var chords []chordJSON
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &chords))
	assert.Equal(t, "I", chords[0].Numeral)
	assert.Equal(t, "C", chords[0].Root)
}

func TestChordsBadParams(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, get(t, "/v1/chords?key=H").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, "/v1/chords?mode=blues").Code)
}

func TestBorrowed(t *testing.T) {
	w := get(t, "/v1/borrowed?key=A&mode=minor")
	assert.Equal(t, http.StatusOK, w.Code)

	var chords []borrowedJSON
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &chords))
	assert.NotEmpty(t, chords)
	byNumeral := make(map[string]borrowedJSON)
	for _, c := range chords {
		assert.Equal(t, "borrowed", c.Function)
		byNumeral[c.Numeral] = c
	}
	assert.Equal(t, "E", byNumeral["V"].Root)
	assert.Equal(t, "resolving", byNumeral["V"].Mood)
}

func TestBorrowedBadParams(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, get(t, "/v1/borrowed?mode=blues").Code)
}

func TestModifiers(t *testing.T) {
	w := get(t, "/v1/modifiers")
	assert.Equal(t, http.StatusOK, w.Code)

	var mods []modifierJSON
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &mods))
	assert.Len(t, mods, 12)
	assert.Equal(t, modifierJSON{Label: "sus2", Category: "suspension"}, mods[0])
	assert.Equal(t, modifierJSON{Label: "no5", Category: "addition"}, mods[11])
}

func TestMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest("POST", "/v1/chords", nil)
	w := httptest.NewRecorder()
	New(nil).Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
