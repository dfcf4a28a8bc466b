package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Inxkls/xerces/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSearchResults MsgKind = iota
	MsgAlbumAdded
	MsgAlbumRemoved
	MsgTracksFetched
)

type searchResultsData struct {
	query   string
	results []models.SearchResult
}

type albumAddedData struct {
	album *models.Album
	err   error
}

type albumRemovedData struct {
	album   models.Album
	removed bool
}

type tracksFetchedData struct {
	album  models.Album
	tracks []models.Track
}

// searchResultsMsg is the constructor for [MsgSearchResults]
func searchResultsMsg(query string, results []models.SearchResult) Msg {
	return Msg{kind: MsgSearchResults, data: searchResultsData{query, results}}
}

// albumAddedMsg is the constructor for [MsgAlbumAdded]
func albumAddedMsg(album *models.Album, err error) Msg {
	return Msg{kind: MsgAlbumAdded, data: albumAddedData{album, err}}
}

// albumRemovedMsg is the constructor for [MsgAlbumRemoved]
func albumRemovedMsg(album models.Album, removed bool) Msg {
	return Msg{kind: MsgAlbumRemoved, data: albumRemovedData{album, removed}}
}

// tracksFetchedMsg is the constructor for [MsgTracksFetched]
func tracksFetchedMsg(album models.Album, tracks []models.Track) Msg {
	return Msg{kind: MsgTracksFetched, data: tracksFetchedData{album, tracks}}
}
