// Package library owns the user's album collection.
//
// A [Store] reads and writes the whole collection through a [Persister] and drops duplicate ids on load.
// A [Service] holds the in-memory collection and implements the user operations on it:
//   - [Service.Search] : catalog lookup, never touches the collection
//   - [Service.AddAlbum] : fetch album info, reject duplicate ids, prepend, persist
//   - [Service.RemoveAlbum] : filter by id, persist; unknown ids are a no-op
//   - [Service.GetTracks] : fetch album info and normalize its track list
//
// Catalog failures in Search and GetTracks degrade to empty results.
// Persistence failures are logged; the in-memory collection stays authoritative for the session.
package library
