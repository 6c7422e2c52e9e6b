package entity

import (
	"context"
	"errors"
)

type BlogCategory string

const (
	CategoryPersonal    BlogCategory = "personal-insurance"
	CategoryBusiness    BlogCategory = "business-insurance"
	CategoryCostSavings BlogCategory = "cost-savings"
)

func (c BlogCategory) Valid() bool {
	switch c {
	case CategoryPersonal, CategoryBusiness, CategoryCostSavings:
		return true
	}
	return false
}

// PostMeta is what listings need; Post adds the markdown body. Turning the
// body into HTML is the front-end's job.
type PostMeta struct {
	Slug            string       `json:"slug"`
	Title           string       `json:"title"`
	Description     string       `json:"description,omitempty"`
	PublishedDate   string       `json:"publishedDate"`
	UpdatedDate     string       `json:"updatedDate,omitempty"`
	Author          string       `json:"author"`
	Category        BlogCategory `json:"category"`
	Tags            []string     `json:"tags"`
	Image           string       `json:"image,omitempty"`
	ImageAlt        string       `json:"imageAlt,omitempty"`
	Featured        bool         `json:"featured"`
	Excerpt         string       `json:"excerpt"`
	WordCount       int          `json:"wordCount"`
	ReadTimeMinutes int          `json:"readTimeMinutes"`
}

type Post struct {
	PostMeta
	Body string `json:"body"`
}

var ErrPostNotFound = errors.New("post not found")

// PostRepositoryInterface is the read side of the resources section. An empty
// category lists everything, newest first.
type PostRepositoryInterface interface {
	List(ctx context.Context, category BlogCategory) ([]PostMeta, error)
	FindBySlug(ctx context.Context, slug string) (*Post, error)
}
