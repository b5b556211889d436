// Package mapper translates between the remote row shape (snake_case
// columns, NULLable foreign keys, JSON columns) and the in-memory
// Product entity. Pure functions, no I/O.
package mapper

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/3xa-store/storefront/internal/models"
)

// blobScheme marks session-local browser object URLs. Such references
// do not survive the session, so they are never persisted in either
// direction and count as "no image".
const blobScheme = "blob:"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify derives a URL slug from a product name: lowercase with
// whitespace runs collapsed to hyphens.
func Slugify(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// UniqueSlug returns slug unchanged when it is free, otherwise appends
// a short suffix derived from the current time. The caller supplies the
// slugs already taken on its backend.
func UniqueSlug(slug string, existing []string) string {
	taken := make(map[string]bool, len(existing))
	for _, s := range existing {
		taken[s] = true
	}
	if !taken[slug] {
		return slug
	}
	candidate := slug + "-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	for n := 2; taken[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%s-%d", slug, strconv.FormatInt(time.Now().UnixNano(), 36), n)
	}
	return candidate
}

// FromRow maps a remote row onto the in-memory entity. Missing or NULL
// columns become zero values or empty collections; a missing slug is
// derived from the name.
func FromRow(row map[string]any) models.Product {
	p := models.Product{
		ID:             asString(row["id"]),
		Name:           asString(row["name"]),
		Slug:           asString(row["slug"]),
		Description:    asString(row["description"]),
		Price:          asFloat(row["price"]),
		Image:          asString(row["image"]),
		Images:         asStringSlice(row["images"]),
		Category:       asString(row["category"]),
		Rating:         asFloat(row["rating"]),
		ReviewCount:    asInt(row["review_count"]),
		Stock:          asInt(row["stock"]),
		Featured:       asBool(row["featured"]),
		DarazLink:      asString(row["daraz_link"]),
		Specifications: asMap(row["specifications"]),
		Tags:           asStringSlice(row["tags"]),
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	if v, ok := row["sale_price"]; ok && v != nil {
		sp := asFloat(v)
		p.SalePrice = &sp
	}
	if v, ok := row["category_id"]; ok && v != nil {
		if id := asString(v); id != "" {
			p.CategoryID = &id
		}
	}
	if strings.HasPrefix(p.Image, blobScheme) {
		p.Image = ""
	}
	p.Images = dropBlobs(p.Images)
	return p
}

// ToRow maps an entity onto the remote row shape. The id column is
// omitted; the backend that stores the row owns identity. existingSlugs
// are the slugs already taken, used for the one automatic uniqueness
// retry before a collision surfaces as a validation error.
func ToRow(p models.Product, existingSlugs []string) map[string]any {
	slug := p.Slug
	if slug == "" {
		slug = Slugify(p.Name)
	}
	slug = UniqueSlug(slug, existingSlugs)

	image := p.Image
	if strings.HasPrefix(image, blobScheme) {
		image = ""
	}

	specs := p.Specifications
	if specs == nil {
		specs = map[string]any{}
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	row := map[string]any{
		"name":           p.Name,
		"slug":           slug,
		"description":    p.Description,
		"price":          p.Price,
		"sale_price":     nil,
		"image":          image,
		"images":         jsonColumn(dropBlobs(p.Images)),
		"category_id":    nil,
		"category":       p.Category,
		"rating":         p.Rating,
		"review_count":   p.ReviewCount,
		"stock":          p.Stock,
		"featured":       p.Featured,
		"daraz_link":     nil,
		"specifications": jsonColumn(specs),
		"tags":           jsonColumn(tags),
	}
	if p.SalePrice != nil {
		row["sale_price"] = *p.SalePrice
	}
	if p.CategoryID != nil {
		row["category_id"] = *p.CategoryID
	}
	if p.DarazLink != "" {
		row["daraz_link"] = p.DarazLink
	}
	return row
}

func dropBlobs(images []string) []string {
	if images == nil {
		return []string{}
	}
	kept := make([]string, 0, len(images))
	for _, img := range images {
		if !strings.HasPrefix(img, blobScheme) {
			kept = append(kept, img)
		}
	}
	return kept
}

// jsonColumn serializes collections for JSON-typed columns. nil slices
// are stored as empty collections, matching what the mapper reads back.
func jsonColumn(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return string(data)
}

// The as* helpers tolerate the value shapes different drivers hand
// back: sqlite integers arrive as int64, JSON columns as strings or
// []byte, numerics occasionally as strings.

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return ""
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}

func asInt(v any) int {
	return int(asFloat(v))
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case string:
		return b == "true" || b == "t" || b == "1"
	default:
		return false
	}
}

func asStringSlice(v any) []string {
	switch s := v.(type) {
	case nil:
		return []string{}
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			out = append(out, asString(e))
		}
		return out
	case string:
		return decodeStringSlice([]byte(s))
	case []byte:
		return decodeStringSlice(s)
	default:
		return []string{}
	}
}

func decodeStringSlice(data []byte) []string {
	var out []string
	if err := json.Unmarshal(data, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func asMap(v any) map[string]any {
	switch m := v.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return m
	case string:
		return decodeMap([]byte(m))
	case []byte:
		return decodeMap(m)
	default:
		return map[string]any{}
	}
}

func decodeMap(data []byte) map[string]any {
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil || out == nil {
		return map[string]any{}
	}
	return out
}
