// package services defines clients for the external HTTP APIs
//
// setlist.fm (setlist search), Spotify (track search and playlist CRUD)
package services
