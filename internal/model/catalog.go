// Package model holds the records stored by the repositories and returned
// by the API.
package model

// Artist is a row of the artist table.
type Artist struct {
	ID    int     `json:"id" db:"id"`
	Name  string  `json:"name" db:"name"`
	Genre *string `json:"genre" db:"genre"`
	Image *string `json:"image" db:"image"`
}

// Track is a row of the tracks table joined with its artist.
//
// Duration is in seconds.
type Track struct {
	ID          int     `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	Duration    int     `json:"duration" db:"duration"`
	AlbumID     *int    `json:"album_id" db:"album_id"`
	ArtistID    int     `json:"artist_id" db:"artist_id"`
	ImgURL      *string `json:"img_url" db:"img_url"`
	TrackURL    string  `json:"track_url" db:"track_url"`
	ArtistName  *string `json:"artist_name" db:"artist_name"`
	ArtistGenre *string `json:"artist_genre" db:"artist_genre"`
	ArtistImage *string `json:"-" db:"artist_image"`
}

// PopularTrack is a Track ranked by how many playlists contain it.
type PopularTrack struct {
	Track
	PlaylistCount int64 `json:"playlist_count" db:"playlist_count"`
}

// Release is a track presented on the home page as a recent release.
type Release struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Cover    string `json:"cover"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	Duration string `json:"duration"`
	Genre    string `json:"genre"`
	TrackURL string `json:"track_url"`
	ArtistID int    `json:"artist_id"`
	AlbumID  *int   `json:"album_id"`
}

// DailyTrack is an entry of the playlist of the day.
type DailyTrack struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Duration int    `json:"duration"`
	Cover    string `json:"cover"`
	Album    string `json:"album"`
	Genre    string `json:"genre"`
	TrackURL string `json:"track_url"`
	ArtistID int    `json:"artist_id"`
}
