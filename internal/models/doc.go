// package models defines the data model shared by both pipelines:
// concert rows read from CSV, the setlist.fm response shape persisted to
// disk, and the service-neutral track and playlist records.
package models
