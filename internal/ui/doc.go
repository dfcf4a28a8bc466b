// Package ui implements an interactive terminal interface for the album collection using bubbletea's Elm architecture.
//
// Views:
//  1. [CollectionView] : browse saved albums, most recent first
//  2. [SearchView] : search-as-you-type against the catalog and add results
//  3. [TracksView] : an album's numbered track list
//  4. [ConfirmDeleteView] : confirm removing an album
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Every keystroke in the search box issues a catalog query; there is no debounce and no cancellation,
// so a slow response can replace the results of a newer query.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
