package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

// pgxConn is the slice of *pgxpool.Pool the repositories use. pgxmock pools
// satisfy it in tests.
type pgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const insertQuoteSQL = `
	INSERT INTO quotes (
		id, created_at, insurance_type, first_name, last_name, email, phone,
		address, city, state, zip_code, property_type, year_built,
		vehicle_make, vehicle_model, vehicle_year, business_type,
		employee_count, annual_revenue, coverage_amount, deductible,
		start_date, additional_notes, consent
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		$17, $18, $19, $20, $21, $22, $23, $24
	)`

func quoteArgs(q *entity.QuoteSubmission) []any {
	return []any{
		q.ID,
		q.ReceivedAt,
		q.InsuranceType,
		q.FirstName,
		q.LastName,
		q.Email,
		q.Phone,
		q.Address,
		q.City,
		q.State,
		q.ZipCode,
		nullString(q.PropertyType),
		nullString(q.YearBuilt),
		nullString(q.VehicleMake),
		nullString(q.VehicleModel),
		nullString(q.VehicleYear),
		nullString(q.BusinessType),
		nullString(q.EmployeeCount),
		nullString(q.AnnualRevenue),
		nullString(q.CoverageAmount),
		nullString(q.Deductible),
		nullString(q.StartDate),
		nullString(q.AdditionalNotes),
		q.Consent,
	}
}

type QuoteRepository struct {
	DB pgxConn
}

func NewQuoteRepository(db pgxConn) *QuoteRepository {
	return &QuoteRepository{DB: db}
}

func (r *QuoteRepository) Create(ctx context.Context, q *entity.QuoteSubmission) error {
	if _, err := r.DB.Exec(ctx, insertQuoteSQL, quoteArgs(q)...); err != nil {
		return fmt.Errorf("insert quote %s: %w", q.ID, err)
	}
	return nil
}

const insertContactSQL = `
	INSERT INTO contacts (id, created_at, name, email, phone, message)
	VALUES ($1, $2, $3, $4, $5, $6)`

type ContactRepository struct {
	DB pgxConn
}

func NewContactRepository(db pgxConn) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(ctx context.Context, m *entity.ContactMessage) error {
	_, err := r.DB.Exec(ctx, insertContactSQL, m.ID, m.ReceivedAt, m.Name, m.Email, m.Phone, m.Message)
	if err != nil {
		return fmt.Errorf("insert contact %s: %w", m.ID, err)
	}
	return nil
}

const postColumns = `slug, title, description, published_date, updated_date, author,
	category, tags, image, image_alt, featured, excerpt, word_count, read_time_minutes`

// PostRepository reads the resources section from the posts table.
type PostRepository struct {
	DB pgxConn
}

func NewPostRepository(db pgxConn) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) List(ctx context.Context, category entity.BlogCategory) ([]entity.PostMeta, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, string(category))
	}
	query += ` ORDER BY published_date DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []entity.PostMeta{}
	for rows.Next() {
		var p entity.PostMeta
		var category string
		if err := rows.Scan(postMetaDest(&p, &category)...); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.Category = entity.BlogCategory(category)
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	var p entity.Post
	var category string
	dest := append(postMetaDest(&p.PostMeta, &category), &p.Body)
	err := r.DB.QueryRow(ctx, `SELECT `+postColumns+`, body FROM posts WHERE slug = $1`, slug).Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post %s: %w", slug, err)
	}
	p.Category = entity.BlogCategory(category)
	return &p, nil
}

// Save upserts a post.
func (r *PostRepository) Save(ctx context.Context, p *entity.Post) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO posts (`+postColumns+`, body)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			published_date = EXCLUDED.published_date,
			updated_date = EXCLUDED.updated_date,
			author = EXCLUDED.author,
			category = EXCLUDED.category,
			tags = EXCLUDED.tags,
			image = EXCLUDED.image,
			image_alt = EXCLUDED.image_alt,
			featured = EXCLUDED.featured,
			excerpt = EXCLUDED.excerpt,
			word_count = EXCLUDED.word_count,
			read_time_minutes = EXCLUDED.read_time_minutes,
			body = EXCLUDED.body`,
		p.Slug, p.Title, p.Description, p.PublishedDate, p.UpdatedDate, p.Author,
		string(p.Category), p.Tags, p.Image, p.ImageAlt, p.Featured,
		p.Excerpt, p.WordCount, p.ReadTimeMinutes, p.Body,
	)
	if err != nil {
		return fmt.Errorf("save post %s: %w", p.Slug, err)
	}
	return nil
}

// postMetaDest lists scan targets in postColumns order. The category goes
// through a plain string.
func postMetaDest(p *entity.PostMeta, category *string) []any {
	return []any{
		&p.Slug,
		&p.Title,
		&p.Description,
		&p.PublishedDate,
		&p.UpdatedDate,
		&p.Author,
		category,
		&p.Tags,
		&p.Image,
		&p.ImageAlt,
		&p.Featured,
		&p.Excerpt,
		&p.WordCount,
		&p.ReadTimeMinutes,
	}
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
