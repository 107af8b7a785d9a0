package repository

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/deppfellow/kringe-music/internal/model"
)

const newsCollection = "news"

type NewsRepository struct {
	coll *mongo.Collection
}

func NewNewsRepository(db *mongo.Database) *NewsRepository {
	return &NewsRepository{coll: db.Collection(newsCollection)}
}

var newestFirst = bson.D{{Key: "created_at", Value: -1}}

// View returns the item with the given hex id and counts the view.
//
// The returned document already includes the new view. A malformed id
// behaves like a missing one and yields mongo.ErrNoDocuments.
func (r *NewsRepository) View(ctx context.Context, id string) (*model.News, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("news %q: %w", id, mongo.ErrNoDocuments)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item model.News
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"views": 1}},
		opts,
	).Decode(&item)
	if err != nil {
		return nil, fmt.Errorf("view news %q: %w", id, err)
	}
	return &item, nil
}

// Search matches query literally and case-insensitively against title,
// content and short_content. At most limit items, newest first.
func (r *NewsRepository) Search(ctx context.Context, query string, limit int64) ([]model.News, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"content": pattern},
		bson.M{"short_content": pattern},
	}}

	opts := options.Find().SetSort(newestFirst).SetLimit(limit)
	return r.find(ctx, filter, opts)
}

// List returns one page of news, newest first. page starts at 1.
func (r *NewsRepository) List(ctx context.Context, page, limit int64) ([]model.News, error) {
	opts := options.Find().
		SetSort(newestFirst).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	return r.find(ctx, bson.M{}, opts)
}

// Create inserts item and returns its hex id.
func (r *NewsRepository) Create(ctx context.Context, item *model.News) (string, error) {
	res, err := r.coll.InsertOne(ctx, item)
	if err != nil {
		return "", fmt.Errorf("insert news: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert news: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// CreateMany inserts items and returns how many were stored.
func (r *NewsRepository) CreateMany(ctx context.Context, items []model.News) (int, error) {
	docs := make([]any, len(items))
	for i := range items {
		docs[i] = items[i]
	}

	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert news batch: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func (r *NewsRepository) find(ctx context.Context, filter any, opts *options.FindOptions) ([]model.News, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find news: %w", err)
	}

	items := []model.News{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode news: %w", err)
	}
	return items, nil
}
