package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deppfellow/kringe-music/internal/model"
)

// trackColumns is the select list every track query shares.
const trackColumns = `
	t.id, t.title, t.duration, t.album_id, t.artist_id, t.img_url, t.track_url,
	a.name AS artist_name, a.genre AS artist_genre, a.image AS artist_image`

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) collectTracks(ctx context.Context, query string, args ...any) ([]model.Track, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Track])
}

func (r *CatalogRepository) CountTracks(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tracks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tracks: %w", err)
	}
	return n, nil
}

// RandomTracks returns up to limit tracks in random order.
func (r *CatalogRepository) RandomTracks(ctx context.Context, limit int) ([]model.Track, error) {
	tracks, err := r.collectTracks(ctx, `
		SELECT`+trackColumns+`
		FROM tracks t
		LEFT JOIN artist a ON t.artist_id = a.id
		ORDER BY RANDOM()
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("random tracks: %w", err)
	}
	return tracks, nil
}

// ListTracks returns up to limit tracks ordered by title.
func (r *CatalogRepository) ListTracks(ctx context.Context, limit int) ([]model.Track, error) {
	tracks, err := r.collectTracks(ctx, `
		SELECT`+trackColumns+`
		FROM tracks t
		LEFT JOIN artist a ON t.artist_id = a.id
		ORDER BY t.title
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	return tracks, nil
}

// PopularTracks ranks tracks by the number of playlists containing them,
// ties broken by title.
func (r *CatalogRepository) PopularTracks(ctx context.Context, limit int) ([]model.PopularTrack, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+trackColumns+`,
			COUNT(pt.track_id) AS playlist_count
		FROM tracks t
		LEFT JOIN artist a ON t.artist_id = a.id
		LEFT JOIN playlist_tracks pt ON t.id = pt.track_id
		GROUP BY t.id, a.name, a.genre, a.image
		ORDER BY playlist_count DESC, t.title
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("popular tracks: %w", err)
	}

	tracks, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.PopularTrack])
	if err != nil {
		return nil, fmt.Errorf("collect popular tracks: %w", err)
	}
	return tracks, nil
}

// GetTrack wraps pgx.ErrNoRows when the track does not exist.
func (r *CatalogRepository) GetTrack(ctx context.Context, id int) (*model.Track, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+trackColumns+`
		FROM tracks t
		LEFT JOIN artist a ON t.artist_id = a.id
		WHERE t.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get track %d: %w", id, err)
	}

	track, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Track])
	if err != nil {
		return nil, fmt.Errorf("get track %d: %w", id, err)
	}
	return track, nil
}

func (r *CatalogRepository) TracksByArtist(ctx context.Context, artistID int) ([]model.Track, error) {
	tracks, err := r.collectTracks(ctx, `
		SELECT`+trackColumns+`
		FROM tracks t
		LEFT JOIN artist a ON t.artist_id = a.id
		WHERE t.artist_id = $1
		ORDER BY t.title`, artistID)
	if err != nil {
		return nil, fmt.Errorf("tracks of artist %d: %w", artistID, err)
	}
	return tracks, nil
}

// SearchTracks matches term case-insensitively against track titles and
// artist names. LIKE wildcards in term are matched literally.
func (r *CatalogRepository) SearchTracks(ctx context.Context, term string) ([]model.Track, error) {
	tracks, err := r.collectTracks(ctx, `
		SELECT`+trackColumns+`
		FROM tracks t
		LEFT JOIN artist a ON t.artist_id = a.id
		WHERE t.title ILIKE $1 ESCAPE '\' OR a.name ILIKE $1 ESCAPE '\'
		ORDER BY t.title`, "%"+escapeLike(term)+"%")
	if err != nil {
		return nil, fmt.Errorf("search tracks: %w", err)
	}
	return tracks, nil
}

func (r *CatalogRepository) ListArtists(ctx context.Context, limit int) ([]model.Artist, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, genre, image
		FROM artist
		ORDER BY name
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}

	artists, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Artist])
	if err != nil {
		return nil, fmt.Errorf("collect artists: %w", err)
	}
	return artists, nil
}

// GetArtist wraps pgx.ErrNoRows when the artist does not exist.
func (r *CatalogRepository) GetArtist(ctx context.Context, id int) (*model.Artist, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, genre, image
		FROM artist
		WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get artist %d: %w", id, err)
	}

	artist, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Artist])
	if err != nil {
		return nil, fmt.Errorf("get artist %d: %w", id, err)
	}
	return artist, nil
}
