package service

import (
	"context"
	"strings"
	"time"

	"github.com/deppfellow/kringe-music/internal/errs"
	"github.com/deppfellow/kringe-music/internal/model"
	"github.com/deppfellow/kringe-music/internal/sqlerr"
)

const (
	MsgNewsNotFound = "News not found"
	MsgNewsCreated  = "News created successfully"

	newsSearchLimit  = 20
	DefaultNewsLimit = 10
	MaxNewsLimit     = 100
)

type NewsStore interface {
	View(ctx context.Context, id string) (*model.News, error)
	Search(ctx context.Context, query string, limit int64) ([]model.News, error)
	List(ctx context.Context, page, limit int64) ([]model.News, error)
	Create(ctx context.Context, item *model.News) (string, error)
	CreateMany(ctx context.Context, items []model.News) (int, error)
}

type NewsService struct {
	store NewsStore
	now   func() time.Time
}

func NewNewsService(store NewsStore) *NewsService {
	return &NewsService{store: store, now: time.Now}
}

// Get returns a news item and counts the view.
func (s *NewsService) Get(ctx context.Context, id string) (*model.News, error) {
	item, err := s.store.View(ctx, strings.TrimSpace(id))
	if sqlerr.IsNotFound(err) {
		return nil, errs.NewNotFoundError(MsgNewsNotFound, true, nil)
	}
	return item, err
}

// Search finds up to 20 items mentioning query, newest first.
func (s *NewsService) Search(ctx context.Context, query string) ([]model.News, error) {
	return s.store.Search(ctx, query, newsSearchLimit)
}

// List returns one page of news. Pages start at 1; out-of-range values fall
// back to the first page of 10.
func (s *NewsService) List(ctx context.Context, page, limit int) ([]model.News, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultNewsLimit
	}
	limit = min(limit, MaxNewsLimit)

	return s.store.List(ctx, int64(page), int64(limit))
}

// NewsInput is a news item submitted by an editor.
type NewsInput struct {
	Title        string
	Content      string
	ShortContent string
	Author       string
	Category     string
	Tags         []string
	ImageURL     string
	Featured     bool
}

// Create publishes a news item with zeroed counters and returns its id.
func (s *NewsService) Create(ctx context.Context, in NewsInput) (string, error) {
	return s.store.Create(ctx, s.newItem(in))
}

func (s *NewsService) newItem(in NewsInput) *model.News {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	return &model.News{
		Title:        in.Title,
		Content:      in.Content,
		ShortContent: in.ShortContent,
		Author:       in.Author,
		Category:     in.Category,
		Tags:         tags,
		ImageURL:     in.ImageURL,
		Featured:     in.Featured,
		Views:        0,
		Likes:        0,
		Comments:     []model.NewsComment{},
		IsPublished:  true,
		CreatedAt:    s.now().UTC(),
	}
}

// Seed inserts the sample news and returns how many were added.
func (s *NewsService) Seed(ctx context.Context) (int, error) {
	items := make([]model.News, 0, len(sampleNews))
	for _, in := range sampleNews {
		items = append(items, *s.newItem(in))
	}
	return s.store.CreateMany(ctx, items)
}

var sampleNews = []NewsInput{
	{
		Title:        "Новый альбом Billie Eilish",
		Content:      `Billie Eilish выпустила свой третий студийный альбом "Hit Me Hard and Soft". Альбом получил восторженные отзывы критиков.`,
		ShortContent: "Вышел долгожданный альбом Hit Me Hard and Soft",
		Author:       "Музыкальный критик",
		Category:     "releases",
		Tags:         []string{"поп", "альбом", "2024", "Billie Eilish"},
		ImageURL:     "/images/news/billie-album.jpg",
		Featured:     true,
	},
	{
		Title:        "Фестиваль Coachella 2024",
		Content:      "Объявлены хедлайнеры фестиваля Coachella 2024. Среди них Lana Del Rey, Tyler The Creator и Doja Cat.",
		ShortContent: "Объявлены хедлайнеры фестиваля",
		Author:       "Редактор событий",
		Category:     "events",
		Tags:         []string{"фестиваль", "концерт", "США", "Coachella"},
		ImageURL:     "/images/news/coachella.jpg",
		Featured:     true,
	},
	{
		Title:        "Новый сингл The Weeknd",
		Content:      "The Weeknd выпустил новый сингл в collaboration с Ariana Grande. Песня уже бьет рекорды по прослушиваниям.",
		ShortContent: "Вышел новый сингл в collaboration с Ariana Grande",
		Author:       "Музыкальный обозреватель",
		Category:     "releases",
		Tags:         []string{"R&B", "сингл", "The Weeknd", "Ariana Grande"},
		ImageURL:     "/images/news/weeknd-single.jpg",
		Featured:     false,
	},
}
