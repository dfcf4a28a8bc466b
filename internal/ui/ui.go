package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss"

	"github.com/Inxkls/xerces/internal/models"
	"github.com/Inxkls/xerces/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	CollectionView ViewState = iota
	SearchView
	TracksView
	ConfirmDeleteView
)

// Collection is the album collection the TUI drives.
type Collection interface {
	Albums() []models.Album
	Search(ctx context.Context, query string) []models.SearchResult
	AddAlbum(ctx context.Context, candidate models.SearchResult) (*models.Album, error)
	RemoveAlbum(ctx context.Context, id string) bool
	GetTracks(ctx context.Context, album models.Album) []models.Track
}

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeWarn
	noticeError
)

type notice struct {
	level noticeLevel
	text  string
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	collection Collection
	logger     *log.Logger

	view    ViewState
	width   int
	height  int
	loading bool

	albumList  list.Model
	resultList list.Model
	trackList  list.Model
	input      textinput.Model

	selected models.Album // album shown in TracksView or pending deletion
	status   notice

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model over collection.
func NewModel(ctx context.Context, collection Collection, logger *log.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search albums"
	ti.Prompt = "> "
	ti.CharLimit = 120
	ti.Cursor.SetMode(cursor.CursorStatic)

	return &Model{
		ctx:        ctx,
		collection: collection,
		logger:     logger,
		view:       CollectionView,
		albumList:  newList("My Albums", albumItems(collection.Albums())),
		resultList: newList("Results", nil),
		trackList:  newList("Tracks", nil),
		input:      ti,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// State returns the current view state.
func (m *Model) State() ViewState { return m.view }

// Init has nothing to fetch; the collection is loaded before the program starts.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case CollectionView:
			return m.handleCollectionKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case TracksView:
			return m.handleTracksKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSearchResults:
		data := msg.data.(searchResultsData)
		m.logger.Debug("search results", "query", data.query, "results", len(data.results))
		cmd := m.resultList.SetItems(resultItems(data.results))
		m.resultList.ResetSelected()
		return m, cmd

	case MsgAlbumAdded:
		data := msg.data.(albumAddedData)
		m.loading = false
		switch {
		case errors.Is(data.err, shared.ErrDuplicateAlbum):
			m.status = notice{noticeWarn, "That album is already in your collection."}
			m.closeSearch()
		case data.err != nil:
			// keep the query so another result can be picked
			m.status = notice{noticeError, "Could not fetch album info."}
		default:
			m.status = notice{noticeInfo, fmt.Sprintf("Added %s - %s", data.album.Artist, data.album.Name)}
			m.closeSearch()
		}
		return m, m.refreshAlbums()

	case MsgAlbumRemoved:
		data := msg.data.(albumRemovedData)
		m.loading = false
		if data.removed {
			m.status = notice{noticeInfo, fmt.Sprintf("Removed %s - %s", data.album.Artist, data.album.Name)}
		}
		m.view = CollectionView
		return m, m.refreshAlbums()

	case MsgTracksFetched:
		data := msg.data.(tracksFetchedData)
		m.loading = false
		if data.album.ID != m.selected.ID || m.view != TracksView {
			return m, nil
		}
		m.trackList.Title = fmt.Sprintf("%s - %s", data.album.Artist, data.album.Name)
		return m, m.trackList.SetItems(trackItems(data.tracks))
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case CollectionView:
		body = m.renderCollection()
	case SearchView:
		body = m.renderSearch()
	case TracksView:
		body = m.renderTracks()
	case ConfirmDeleteView:
		body = m.renderConfirm()
	}

	if status := m.renderStatus(); status != "" {
		return lipgloss.JoinVertical(lipgloss.Left, body, status)
	}
	return body
}

func (m *Model) handleCollectionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		m.status = notice{}
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.enter):
		if album, ok := m.selectedAlbum(); ok {
			m.selected = album
			m.view = TracksView
			m.loading = true
			m.trackList.Title = fmt.Sprintf("%s - %s", album.Artist, album.Name)
			m.trackList.SetItems(nil)
			return m, m.fetchTracks(album)
		}
		return m, nil
	case key.Matches(msg, m.keys.delete):
		if album, ok := m.selectedAlbum(); ok {
			m.selected = album
			m.view = ConfirmDeleteView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.albumList, cmd = m.albumList.Update(msg)
	return m, cmd
}

// closeSearch clears the query and results and returns to the collection.
func (m *Model) closeSearch() {
	m.input.Reset()
	m.input.Blur()
	m.resultList.SetItems(nil)
	m.view = CollectionView
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.closeSearch()
		return m, nil
	case tea.KeyEnter:
		item, ok := m.resultList.SelectedItem().(resultItem)
		if !ok {
			return m, nil
		}
		m.loading = true
		m.status = notice{noticeInfo, fmt.Sprintf("Adding %s - %s...", item.result.Artist, item.result.Name)}
		return m, m.addAlbum(item.result)
	case tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.resultList, cmd = m.resultList.Update(msg)
		return m, cmd
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	query := m.input.Value()
	if query == before {
		return m, cmd
	}
	if strings.TrimSpace(query) == "" {
		return m, tea.Batch(cmd, m.resultList.SetItems(nil))
	}
	return m, tea.Batch(cmd, m.search(query))
}

func (m *Model) handleTracksKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = CollectionView
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		m.loading = true
		return m, m.removeAlbum(m.selected)
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
		m.view = CollectionView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case CollectionView:
		m.albumList, cmd = m.albumList.Update(msg)
	case SearchView:
		m.resultList, cmd = m.resultList.Update(msg)
	case TracksView:
		m.trackList, cmd = m.trackList.Update(msg)
	}
	return m, cmd
}

func (m *Model) resize() {
	w, h := m.width-4, m.height-8
	m.albumList.SetSize(w, h)
	m.resultList.SetSize(w, h-2)
	m.trackList.SetSize(w, h)
	m.input.Width = w - len(m.input.Prompt) - 1
}

func (m *Model) selectedAlbum() (models.Album, bool) {
	item, ok := m.albumList.SelectedItem().(albumItem)
	if !ok {
		return models.Album{}, false
	}
	return item.album, true
}

func (m *Model) refreshAlbums() tea.Cmd {
	return m.albumList.SetItems(albumItems(m.collection.Albums()))
}

func (m *Model) search(query string) tea.Cmd {
	return func() tea.Msg {
		return searchResultsMsg(query, m.collection.Search(m.ctx, query))
	}
}

func (m *Model) addAlbum(candidate models.SearchResult) tea.Cmd {
	return func() tea.Msg {
		album, err := m.collection.AddAlbum(m.ctx, candidate)
		return albumAddedMsg(album, err)
	}
}

func (m *Model) removeAlbum(album models.Album) tea.Cmd {
	return func() tea.Msg {
		return albumRemovedMsg(album, m.collection.RemoveAlbum(m.ctx, album.ID))
	}
}

func (m *Model) fetchTracks(album models.Album) tea.Cmd {
	return func() tea.Msg {
		return tracksFetchedMsg(album, m.collection.GetTracks(m.ctx, album))
	}
}

func (m *Model) renderCollection() string {
	var content string
	if len(m.albumList.Items()) == 0 {
		content = styles.title.Render("My Albums") + "\n" + styles.help.Render("No albums yet. Press / to search.")
	} else {
		content = m.albumList.View()
	}

	helpKeys := []key.Binding{m.keys.search, m.keys.enter, m.keys.delete, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", content, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderSearch() string {
	var results string
	switch {
	case strings.TrimSpace(m.input.Value()) == "":
		results = styles.help.Render("Type to search the catalog.")
	case len(m.resultList.Items()) == 0:
		results = styles.help.Render("No results.")
	default:
		results = m.resultList.View()
	}

	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.add, m.keys.back}
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s",
		styles.title.Render("Search"), m.input.View(), results, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderTracks() string {
	var content string
	switch {
	case m.loading:
		content = styles.title.Render(m.trackList.Title) + "\n" + styles.help.Render("Loading tracks...")
	case len(m.trackList.Items()) == 0:
		content = styles.title.Render(m.trackList.Title) + "\n" + styles.help.Render("No tracks found for this album.")
	default:
		content = m.trackList.View()
	}

	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", content, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderConfirm() string {
	title := styles.err.Render("Delete album?")
	info := fmt.Sprintf("%s - %s", m.selected.Artist, m.selected.Name)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	return fmt.Sprintf("%s\n\n%s", styles.box.Render(title+"\n\n"+info), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderStatus() string {
	if m.status.text == "" {
		return ""
	}
	switch m.status.level {
	case noticeWarn:
		return styles.warn.Render(m.status.text)
	case noticeError:
		return styles.err.Render(m.status.text)
	default:
		return styles.ok.Render(m.status.text)
	}
}
