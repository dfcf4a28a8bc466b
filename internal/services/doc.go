// Package services defines the [Catalog] interface and implements it for Last.fm.
//
// # Transport
//
// [APIService] builds query-string GET requests (api_key, format=json, method) and returns raw responses.
// It never interprets status codes.
//
// # Last.fm Implementation
//
// [LastFMService] calls album.search and album.getinfo and resolves the catalog's loose JSON at this boundary:
//   - artist as a string or as {"name": ...} : [ArtistField]
//   - tracks.track as absent, one object or an array : [TrackList]
//   - numeric fields sent as strings : [FlexInt]
//
// [NormalizeTracks] turns an [AlbumInfo] into ranked [models.Track] values.
// An album with no track list but a name yields a single track named after the album.
//
// # Error Handling
//
// Every failure is wrapped in [shared.ErrAPIRequest]:
//   - transport failures and timeouts
//   - non-2xx statuses
//   - catalog error envelopes ({"error": 6, "message": "..."})
//   - undecodable bodies
package services
