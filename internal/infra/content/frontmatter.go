package content

import (
	"strings"

	"gopkg.in/yaml.v3"
)

type frontMatter struct {
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	PublishedDate string   `yaml:"publishedDate"`
	UpdatedDate   string   `yaml:"updatedDate"`
	Author        string   `yaml:"author"`
	Category      string   `yaml:"category"`
	Tags          []string `yaml:"tags"`
	Slug          string   `yaml:"slug"`
	Image         string   `yaml:"image"`
	ImageAlt      string   `yaml:"imageAlt"`
	Featured      bool     `yaml:"featured"`
}

// splitFrontMatter separates a leading "---" block from the markdown body.
// Files without a closed block are all body.
func splitFrontMatter(source string) (frontMatter, string, error) {
	var fm frontMatter
	if !strings.HasPrefix(source, "---") {
		return fm, source, nil
	}
	end := strings.Index(source[3:], "\n---")
	if end == -1 {
		return fm, source, nil
	}
	end += 3
	raw := source[3:end]
	body := strings.TrimSpace(source[end+4:])
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return fm, body, err
	}
	return fm, body, nil
}

func normalizeSlug(slug string) string {
	slug = strings.TrimPrefix(slug, "/resources/")
	return strings.TrimPrefix(slug, "/")
}
