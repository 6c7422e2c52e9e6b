package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

// OpenSQLite opens a local database file in WAL mode, or an in-memory one for
// ":memory:".
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer avoids "database is locked"; it also keeps :memory: to a single database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

type SQLiteQuoteRepository struct {
	DB *sql.DB
}

func (r *SQLiteQuoteRepository) Create(ctx context.Context, q *entity.QuoteSubmission) error {
	if _, err := r.DB.ExecContext(ctx, sqlitePlaceholders(insertQuoteSQL), quoteArgs(q)...); err != nil {
		return fmt.Errorf("insert quote %s: %w", q.ID, err)
	}
	return nil
}

type SQLiteContactRepository struct {
	DB *sql.DB
}

func (r *SQLiteContactRepository) Create(ctx context.Context, m *entity.ContactMessage) error {
	_, err := r.DB.ExecContext(ctx, sqlitePlaceholders(insertContactSQL),
		m.ID, m.ReceivedAt, m.Name, m.Email, m.Phone, m.Message)
	if err != nil {
		return fmt.Errorf("insert contact %s: %w", m.ID, err)
	}
	return nil
}

// SQLitePostRepository keeps tags as a JSON array in a text column.
type SQLitePostRepository struct {
	DB *sql.DB
}

func (r *SQLitePostRepository) List(ctx context.Context, category entity.BlogCategory) ([]entity.PostMeta, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	args := []any{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY published_date DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []entity.PostMeta{}
	for rows.Next() {
		p, err := scanSQLitePost(rows.Scan, nil)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p.PostMeta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *SQLitePostRepository) FindBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+postColumns+`, body FROM posts WHERE slug = ?`, slug)
	var body string
	p, err := scanSQLitePost(row.Scan, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Body = body
	return p, nil
}

// Save upserts a post. The file importer uses it to fill the table.
func (r *SQLitePostRepository) Save(ctx context.Context, p *entity.Post) error {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO posts (`+postColumns+`, body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			published_date = excluded.published_date,
			updated_date = excluded.updated_date,
			author = excluded.author,
			category = excluded.category,
			tags = excluded.tags,
			image = excluded.image,
			image_alt = excluded.image_alt,
			featured = excluded.featured,
			excerpt = excluded.excerpt,
			word_count = excluded.word_count,
			read_time_minutes = excluded.read_time_minutes,
			body = excluded.body`,
		p.Slug, p.Title, p.Description, p.PublishedDate, p.UpdatedDate, p.Author,
		string(p.Category), string(tags), p.Image, p.ImageAlt, p.Featured,
		p.Excerpt, p.WordCount, p.ReadTimeMinutes, p.Body,
	)
	if err != nil {
		return fmt.Errorf("save post %s: %w", p.Slug, err)
	}
	return nil
}

func scanSQLitePost(scan func(dest ...any) error, body *string) (*entity.Post, error) {
	var p entity.Post
	var category, tags string
	dest := []any{
		&p.Slug, &p.Title, &p.Description, &p.PublishedDate, &p.UpdatedDate, &p.Author,
		&category, &tags, &p.Image, &p.ImageAlt, &p.Featured, &p.Excerpt,
		&p.WordCount, &p.ReadTimeMinutes,
	}
	if body != nil {
		dest = append(dest, body)
	}
	if err := scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}
	p.Category = entity.BlogCategory(category)
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		return nil, fmt.Errorf("decode tags for %s: %w", p.Slug, err)
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}

// sqlitePlaceholders rewrites $n placeholders to ?n so the Postgres
// statements can be shared.
func sqlitePlaceholders(query string) string {
	return strings.ReplaceAll(query, "$", "?")
}
