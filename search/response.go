package search

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Arylite/nephtys/models"
)

// Shape tells which of the two wire forms a Response was decoded from.
type Shape int

const (
	// ShapeHits is an object carrying a "hits" array, as the index answers.
	ShapeHits Shape = iota
	// ShapeRawArray is a bare array of hit objects, as kept in the result cache.
	ShapeRawArray
)

func (s Shape) String() string {
	switch s {
	case ShapeHits:
		return "hits"
	case ShapeRawArray:
		return "raw-array"
	default:
		return "unknown"
	}
}

// Hit is one untyped search hit.
type Hit = map[string]interface{}

// Response is a search result in either shape. Consumers only call Webtoons.
type Response struct {
	Shape Shape
	Hits  []Hit
}

// HitsResponse builds a response of the index shape.
func HitsResponse(hits []Hit) Response {
	if hits == nil {
		hits = []Hit{}
	}
	return Response{Shape: ShapeHits, Hits: hits}
}

// RawArrayResponse builds a response of the cached shape.
func RawArrayResponse(hits []Hit) Response {
	if hits == nil {
		hits = []Hit{}
	}
	return Response{Shape: ShapeRawArray, Hits: hits}
}

var errUnknownShape = errors.New("search response is neither an array nor an object with hits")

// DecodeResponse resolves the shape of a JSON search payload.
func DecodeResponse(b []byte) (Response, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return Response{}, errUnknownShape
	}
	switch trimmed[0] {
	case '[':
		var hits []Hit
		if err := json.Unmarshal(trimmed, &hits); err != nil {
			return Response{}, fmt.Errorf("decode raw array: %w", err)
		}
		return RawArrayResponse(hits), nil
	case '{':
		var wrapper struct {
			Hits []Hit `json:"hits"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return Response{}, fmt.Errorf("decode hits object: %w", err)
		}
		return HitsResponse(wrapper.Hits), nil
	default:
		return Response{}, errUnknownShape
	}
}

// Webtoons normalizes every hit. The result is never nil.
func (r Response) Webtoons() []models.Webtoon {
	out := make([]models.Webtoon, 0, len(r.Hits))
	for _, h := range r.Hits {
		out = append(out, Normalize(h))
	}
	return out
}

// Normalize turns one hit into a Webtoon, filling defaults for absent fields.
func Normalize(h Hit) models.Webtoon {
	id := stringField(h, "objectID")
	if id == "" {
		id = stringField(h, "id")
	}
	if id == "" {
		id = "unknown"
	}
	title := stringField(h, "title")
	if title == "" {
		title = "Untitled"
	}
	author := stringField(h, "author")
	if author == "" {
		author = "Unknown"
	}
	description := stringField(h, "description")
	cover := stringField(h, "coverImage")

	return models.Webtoon{
		ID:          id,
		Title:       title,
		Description: &description,
		Author:      author,
		Status:      models.Status(stringField(h, "status")),
		CoverImage:  &cover,
		CreatedAt:   timeField(h, "createdAt"),
		UpdatedAt:   timeField(h, "updatedAt"),
	}
}

func stringField(h Hit, key string) string {
	switch v := h[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// timeField accepts RFC 3339 strings and unix milliseconds.
func timeField(h Hit, key string) time.Time {
	switch v := h[key].(type) {
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	case float64:
		return time.UnixMilli(int64(v)).UTC()
	}
	return time.Time{}
}
