// Package content serves the resources section from markdown files.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

const defaultAuthor = "TGI Agency Team"

// FileStore reads *.md files with YAML front matter from a directory. The
// directory is scanned once and cached until Reload.
type FileStore struct {
	fsys   fs.FS
	logger *zap.Logger

	mu     sync.RWMutex
	loaded bool
	metas  []entity.PostMeta
	posts  map[string]*entity.Post
}

func NewFileStore(fsys fs.FS, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{fsys: fsys, logger: logger}
}

func (s *FileStore) List(_ context.Context, category entity.BlogCategory) ([]entity.PostMeta, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.PostMeta, 0, len(s.metas))
	for _, m := range s.metas {
		if category == "" || m.Category == category {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *FileStore) FindBySlug(_ context.Context, slug string) (*entity.Post, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[normalizeSlug(slug)]
	if !ok {
		return nil, entity.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

// All returns every parsed post with its body, newest first.
func (s *FileStore) All(ctx context.Context) ([]*entity.Post, error) {
	metas, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Post, 0, len(metas))
	for _, m := range metas {
		p, err := s.FindBySlug(ctx, m.Slug)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Reload drops the cache so the next read rescans the directory.
func (s *FileStore) Reload() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}

func (s *FileStore) ensureLoaded() error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	metas, posts, err := s.scan()
	if err != nil {
		return err
	}
	s.metas, s.posts, s.loaded = metas, posts, true
	return nil
}

func (s *FileStore) scan() ([]entity.PostMeta, map[string]*entity.Post, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		// A missing directory is an empty blog.
		s.logger.Warn("content directory unreadable", zap.Error(err))
		return []entity.PostMeta{}, map[string]*entity.Post{}, nil
	}

	posts := make(map[string]*entity.Post)
	metas := []entity.PostMeta{}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		raw, err := fs.ReadFile(s.fsys, e.Name())
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		p, ok := s.parse(e.Name(), string(raw))
		if !ok {
			continue
		}
		posts[p.Slug] = p
		metas = append(metas, p.PostMeta)
	}

	sort.SliceStable(metas, func(i, j int) bool {
		return metas[i].PublishedDate > metas[j].PublishedDate
	})
	return metas, posts, nil
}

// parse skips files missing a title, slug, category or published date.
func (s *FileStore) parse(name, raw string) (*entity.Post, bool) {
	fm, body, err := splitFrontMatter(raw)
	if err != nil {
		s.logger.Warn("bad front matter", zap.String("file", name), zap.Error(err))
		return nil, false
	}
	if fm.Title == "" || fm.Slug == "" || fm.Category == "" || fm.PublishedDate == "" {
		s.logger.Debug("skipping post without required front matter", zap.String("file", name))
		return nil, false
	}

	words := wordCount(body)
	meta := entity.PostMeta{
		Slug:            normalizeSlug(fm.Slug),
		Title:           fm.Title,
		Description:     fm.Description,
		PublishedDate:   fm.PublishedDate,
		UpdatedDate:     fm.UpdatedDate,
		Author:          fm.Author,
		Category:        entity.BlogCategory(strings.TrimSpace(fm.Category)),
		Tags:            fm.Tags,
		Image:           fm.Image,
		ImageAlt:        fm.ImageAlt,
		Featured:        fm.Featured,
		Excerpt:         excerpt(body),
		WordCount:       words,
		ReadTimeMinutes: readTime(words),
	}
	if meta.UpdatedDate == "" {
		meta.UpdatedDate = meta.PublishedDate
	}
	if meta.Author == "" {
		meta.Author = defaultAuthor
	}
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	return &entity.Post{PostMeta: meta, Body: body}, true
}

// Related lists up to n posts sharing slug's category, newest first, without
// the post itself. An unknown slug has no related posts.
func Related(ctx context.Context, repo entity.PostRepositoryInterface, slug string, n int) ([]entity.PostMeta, error) {
	current, err := repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, entity.ErrPostNotFound) {
			return []entity.PostMeta{}, nil
		}
		return nil, err
	}
	same, err := repo.List(ctx, current.Category)
	if err != nil {
		return nil, err
	}
	out := make([]entity.PostMeta, 0, n)
	for _, p := range same {
		if len(out) == n {
			break
		}
		if p.Slug != current.Slug {
			out = append(out, p)
		}
	}
	return out, nil
}

// PostSaver is a store that can take posts, such as the database repositories.
type PostSaver interface {
	Save(ctx context.Context, p *entity.Post) error
}

// Import copies every post from the file store into dst and returns the count.
func Import(ctx context.Context, src *FileStore, dst PostSaver) (int, error) {
	posts, err := src.All(ctx)
	if err != nil {
		return 0, err
	}
	for i, p := range posts {
		if err := dst.Save(ctx, p); err != nil {
			return i, fmt.Errorf("import %s: %w", p.Slug, err)
		}
	}
	return len(posts), nil
}
