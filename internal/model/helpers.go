package model

import (
	"encoding/json"
	"time"

	"taxoffice/internal/engine"

	"github.com/google/uuid"
)

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func datePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := engine.Date(*t)
	return &d
}

// EncodeList serializes a string list for a JSON text column.
func EncodeList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(items)
	return string(data)
}

// DecodeList reads a JSON text column back into a string list. Malformed or empty
// values decode to an empty list.
func DecodeList(raw string) []string {
	var out []string
	if raw == "" || json.Unmarshal([]byte(raw), &out) != nil {
		return []string{}
	}
	return out
}
