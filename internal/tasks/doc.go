// package tasks implements the two batch pipelines.
//
// Fetcher downloads setlists for a list of concerts and writes one JSON
// document per match. Builder reads those documents back, resolves each song
// against the track catalog, and appends the matches to a playlist. Both run
// sequentially; per-item failures are logged and absorbed so one bad concert
// or song never stops a run.
package tasks
