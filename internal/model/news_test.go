package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewsMarshalJSON(t *testing.T) {
	item := News{
		Title:     "Новый релиз",
		Content:   "Вышел новый альбом",
		CreatedAt: time.Date(2026, 3, 15, 10, 4, 5, 0, time.UTC),
	}

	raw, err := json.Marshal(item)
	if err != nil {
		t.Fatal(err)
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}

	if out["created_at"] != "2026-03-15 10:04:05" {
		t.Errorf("created_at = %v", out["created_at"])
	}
	if tags, ok := out["tags"].([]any); !ok || len(tags) != 0 {
		t.Errorf("tags = %v, want []", out["tags"])
	}
	if comments, ok := out["comments"].([]any); !ok || len(comments) != 0 {
		t.Errorf("comments = %v, want []", out["comments"])
	}
	if _, ok := out["author"]; ok {
		t.Error("empty author should be omitted")
	}
}

func TestNewsMarshalJSONPointer(t *testing.T) {
	raw, err := json.Marshal(&News{Title: "x"})
	if err != nil {
		t.Fatal(err)
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	if out["created_at"] != "" {
		t.Errorf("zero created_at = %v, want empty", out["created_at"])
	}
}
