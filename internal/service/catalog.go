package service

import (
	"context"
	"fmt"
	"html"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/deppfellow/kringe-music/internal/errs"
	"github.com/deppfellow/kringe-music/internal/lib/utils"
	"github.com/deppfellow/kringe-music/internal/model"
	"github.com/deppfellow/kringe-music/internal/sqlerr"
)

const (
	MsgNoTracks         = "Нет треков в базе данных"
	MsgTrackNotFound    = "Трек не найден"
	MsgArtistNotFound   = "Исполнитель не найден"
	MsgDailyLoaded      = "Плейлист дня успешно загружен"
	MsgDailyEmpty       = "В базе данных нет треков"
	UnknownArtist       = "Неизвестный исполнитель"
	DefaultReleaseGenre = "Разнообразный"
	DefaultDailyGenre   = "Не указан"
	DefaultAlbumCover   = "images/default-album.jpg"
	DefaultTrackCover   = "images/default-track.jpg"
	UntitledTrack       = "Без названия"
	NoAlbum             = "Без альбома"

	releaseTypeAlbum  = "Альбом"
	releaseTypeSingle = "Сингл"

	// releases are dated within the last releaseWindowDays days
	releaseWindowDays = 30
)

// CatalogStore is the read side of the relational catalog.
type CatalogStore interface {
	CountTracks(ctx context.Context) (int, error)
	RandomTracks(ctx context.Context, limit int) ([]model.Track, error)
	ListTracks(ctx context.Context, limit int) ([]model.Track, error)
	PopularTracks(ctx context.Context, limit int) ([]model.PopularTrack, error)
	GetTrack(ctx context.Context, id int) (*model.Track, error)
	TracksByArtist(ctx context.Context, artistID int) ([]model.Track, error)
	SearchTracks(ctx context.Context, term string) ([]model.Track, error)
	ListArtists(ctx context.Context, limit int) ([]model.Artist, error)
	GetArtist(ctx context.Context, id int) (*model.Artist, error)
}

type CatalogService struct {
	store CatalogStore
	now   func() time.Time
	// intN returns a number in [0, n)
	intN func(n int) int
}

func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{
		store: store,
		now:   time.Now,
		intN:  rand.IntN,
	}
}

// Releases picks up to limit random tracks and formats them as releases.
// An empty catalog is reported as a rejection, not an error.
func (s *CatalogService) Releases(ctx context.Context, limit int) ([]model.Release, error) {
	n, err := s.store.CountTracks(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errs.NewRejectedError(MsgNoTracks, nil)
	}

	tracks, err := s.store.RandomTracks(ctx, limit)
	if err != nil {
		return nil, err
	}

	today := s.now()
	releases := make([]model.Release, 0, len(tracks))
	for _, t := range tracks {
		releases = append(releases, s.release(t, today))
	}
	return releases, nil
}

func (s *CatalogService) release(t model.Track, today time.Time) model.Release {
	kind := releaseTypeSingle
	if t.AlbumID != nil {
		kind = releaseTypeAlbum
	}

	return model.Release{
		ID:       t.ID,
		Title:    html.EscapeString(t.Title),
		Artist:   html.EscapeString(orDefault(t.ArtistName, UnknownArtist)),
		Cover:    utils.FirstNonEmpty(deref(t.ImgURL), deref(t.ArtistImage), DefaultAlbumCover),
		Type:     kind,
		Date:     today.AddDate(0, 0, -s.intN(releaseWindowDays+1)).Format("02.01.2006"),
		Duration: utils.FormatDuration(t.Duration),
		Genre:    html.EscapeString(orDefault(t.ArtistGenre, DefaultReleaseGenre)),
		TrackURL: t.TrackURL,
		ArtistID: t.ArtistID,
		AlbumID:  t.AlbumID,
	}
}

// Tracks lists up to limit tracks by title.
func (s *CatalogService) Tracks(ctx context.Context, limit int) ([]model.Track, error) {
	return s.store.ListTracks(ctx, limit)
}

// PopularTracks lists up to limit tracks ranked by playlist membership.
func (s *CatalogService) PopularTracks(ctx context.Context, limit int) ([]model.PopularTrack, error) {
	return s.store.PopularTracks(ctx, limit)
}

// Track looks a track up by its path id. Non-numeric ids are not found.
func (s *CatalogService) Track(ctx context.Context, rawID string) (*model.Track, error) {
	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		return nil, errs.NewNotFoundError(MsgTrackNotFound, true, nil)
	}

	track, err := s.store.GetTrack(ctx, id)
	if sqlerr.IsNotFound(err) {
		return nil, errs.NewNotFoundError(MsgTrackNotFound, true, nil)
	}
	return track, err
}

func (s *CatalogService) Artists(ctx context.Context, limit int) ([]model.Artist, error) {
	return s.store.ListArtists(ctx, limit)
}

// Artist returns the artist and all their tracks.
func (s *CatalogService) Artist(ctx context.Context, rawID string) (*model.Artist, []model.Track, error) {
	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		return nil, nil, errs.NewNotFoundError(MsgArtistNotFound, true, nil)
	}

	artist, err := s.store.GetArtist(ctx, id)
	if sqlerr.IsNotFound(err) {
		return nil, nil, errs.NewNotFoundError(MsgArtistNotFound, true, nil)
	}
	if err != nil {
		return nil, nil, err
	}

	tracks, err := s.store.TracksByArtist(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return artist, tracks, nil
}

// Search matches the query against track titles and artist names.
// A blank query returns no results without touching the store.
func (s *CatalogService) Search(ctx context.Context, query string) ([]model.Track, error) {
	if strings.TrimSpace(query) == "" {
		return []model.Track{}, nil
	}
	return s.store.SearchTracks(ctx, query)
}

// DailyPlaylist is the playlist of the day.
type DailyPlaylist struct {
	Tracks  []model.DailyTrack
	Date    string
	Message string
}

// DailyPlaylist picks up to limit random tracks, falling back to the first
// tracks by title when the random pick comes back empty.
func (s *CatalogService) DailyPlaylist(ctx context.Context, limit int) (*DailyPlaylist, error) {
	tracks, err := s.store.RandomTracks(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		if tracks, err = s.store.ListTracks(ctx, limit); err != nil {
			return nil, err
		}
	}

	out := &DailyPlaylist{
		Tracks:  make([]model.DailyTrack, 0, len(tracks)),
		Date:    s.now().Format(time.DateOnly),
		Message: MsgDailyLoaded,
	}
	for _, t := range tracks {
		out.Tracks = append(out.Tracks, dailyTrack(t))
	}
	if len(out.Tracks) == 0 {
		out.Message = MsgDailyEmpty
	}
	return out, nil
}

func dailyTrack(t model.Track) model.DailyTrack {
	album := NoAlbum
	if t.AlbumID != nil {
		album = fmt.Sprintf("Альбом #%d", *t.AlbumID)
	}

	return model.DailyTrack{
		ID:       t.ID,
		Title:    utils.FirstNonEmpty(t.Title, UntitledTrack),
		Artist:   orDefault(t.ArtistName, UnknownArtist),
		Duration: t.Duration,
		Cover:    utils.FirstNonEmpty(deref(t.ImgURL), deref(t.ArtistImage), DefaultTrackCover),
		Album:    album,
		Genre:    orDefault(t.ArtistGenre, DefaultDailyGenre),
		TrackURL: t.TrackURL,
		ArtistID: t.ArtistID,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDefault(s *string, def string) string {
	return utils.FirstNonEmpty(deref(s), def)
}
