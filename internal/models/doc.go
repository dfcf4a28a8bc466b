// Package models defines the domain types shared by the catalog client, the collection and the presentation layers.
//
//   - [Album] : a saved collection entry; persisted as {id, name, artist, image}
//   - [Track] : one song of an album, ranked from 1
//   - [SearchResult] : a catalog match, never persisted
//
// Catalog wire shapes (string-or-object artists, object-or-array track lists) never reach this package;
// the services package resolves them into these fixed types at the parsing boundary.
package models
