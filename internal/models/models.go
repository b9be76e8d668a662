// package models defines the data model shared by the catalog and dataset layers
package models

import "time"

// Playlist is a playlist summary returned by a catalog search.
type Playlist struct {
	ID   string
	Name string
}

// TrackRecord is one flattened track from a playlist fetch.
// Artists preserve the order reported by the catalog API.
type TrackRecord struct {
	Name       string
	ID         string
	Popularity int
	Artists    []string
}

// Snapshot records one persisted run of the cleaning and labeling pipeline.
type Snapshot struct {
	ID                string
	Source            string // path of the input CSV
	RowsIn            int
	RowsOut           int
	MissingDropped    int
	DuplicatesRemoved int
	HitThreshold      int
	Hits              int
	NonHits           int
	CreatedAt         time.Time
}
