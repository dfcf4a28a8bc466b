// Package repositories implements SQLite persistence for the album collection.
//
// The collection is stored as one JSON document per logical key (default "albums").
// Every save replaces the whole document and stamps it with a fresh revision id.
//
// Key Implementations:
//   - [CollectionRepository] : keyed document reads, upserts and metadata lookups
//   - [CollectionBlob] : a [CollectionRepository] bound to one key, the store's persistence port
package repositories
