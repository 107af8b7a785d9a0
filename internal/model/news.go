package model

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewsTimeLayout is how news timestamps are rendered to clients.
const NewsTimeLayout = "2006-01-02 15:04:05"

// News is a document of the news collection.
type News struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title        string             `bson:"title" json:"title"`
	Content      string             `bson:"content" json:"content"`
	ShortContent string             `bson:"short_content,omitempty" json:"short_content,omitempty"`
	Author       string             `bson:"author,omitempty" json:"author,omitempty"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	Tags         []string           `bson:"tags" json:"tags"`
	ImageURL     string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Featured     bool               `bson:"featured" json:"featured"`
	Views        int64              `bson:"views" json:"views"`
	Likes        int64              `bson:"likes" json:"likes"`
	Comments     []NewsComment      `bson:"comments" json:"comments"`
	IsPublished  bool               `bson:"is_published" json:"is_published"`
	CreatedAt    time.Time          `bson:"created_at" json:"-"`
}

// NewsComment is a reader comment embedded in a news document.
type NewsComment struct {
	Author    string    `bson:"author" json:"author"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// MarshalJSON renders created_at as "YYYY-MM-DD hh:mm:ss" and never emits
// null for tags or comments.
func (n News) MarshalJSON() ([]byte, error) {
	type alias News

	out := struct {
		alias
		CreatedAt string `json:"created_at"`
	}{alias: alias(n)}

	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.Comments == nil {
		out.Comments = []NewsComment{}
	}
	if !n.CreatedAt.IsZero() {
		out.CreatedAt = n.CreatedAt.Format(NewsTimeLayout)
	}

	return json.Marshal(out)
}
