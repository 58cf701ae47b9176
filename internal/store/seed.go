package store

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v2"

	"github.com/travelmada/internal/model"
)

//go:embed seed/posts/*.md seed/destinations.yaml
var seedFS embed.FS

type postMatter struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Slug     string   `yaml:"slug"`
	Excerpt  string   `yaml:"excerpt"`
	Cover    string   `yaml:"cover"`
	Author   string   `yaml:"author"`
	Date     string   `yaml:"date"`
	Category string   `yaml:"category"`
	ReadTime string   `yaml:"readTime"`
	Tags     []string `yaml:"tags"`
	SEOTitle string   `yaml:"seoTitle"`
	SEODesc  string   `yaml:"seoDesc"`
	Status   string   `yaml:"status"`
}

// SeedPosts parses the embedded launch articles in file name order.
func SeedPosts() ([]model.BlogPost, error) {
	return loadPosts(seedFS, "seed/posts")
}

// SeedDestinations parses the embedded destinations list.
func SeedDestinations() ([]model.Destination, error) {
	raw, err := seedFS.ReadFile("seed/destinations.yaml")
	if err != nil {
		return nil, fmt.Errorf("read destinations: %w", err)
	}
	var destinations []model.Destination
	if err := yaml.Unmarshal(raw, &destinations); err != nil {
		return nil, fmt.Errorf("parse destinations: %w", err)
	}
	return destinations, nil
}

// NewSeededContentStore builds a store holding the seed posts and default settings.
func NewSeededContentStore() (*ContentStore, error) {
	posts, err := SeedPosts()
	if err != nil {
		return nil, err
	}
	return NewContentStore(posts, model.DefaultSettings()), nil
}

func loadPosts(fsys fs.FS, dir string) ([]model.BlogPost, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read seed dir: %w", err)
	}

	posts := make([]model.BlogPost, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".md" {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		post, err := parsePost(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func parsePost(raw []byte) (model.BlogPost, error) {
	var matter postMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &matter)
	if err != nil {
		return model.BlogPost{}, err
	}
	if strings.TrimSpace(matter.ID) == "" {
		return model.BlogPost{}, fmt.Errorf("missing id")
	}

	cover, err := model.ParseImageRef(matter.Cover)
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("cover: %w", err)
	}
	status, err := model.ParseStatus(matter.Status)
	if err != nil {
		status = model.StatusDraft
	}
	slug := strings.TrimSpace(matter.Slug)
	if slug == "" {
		slug = model.DeriveSlug(matter.Title)
	}

	return model.BlogPost{
		ID:             strings.TrimSpace(matter.ID),
		Title:          matter.Title,
		Slug:           slug,
		Excerpt:        matter.Excerpt,
		Content:        strings.TrimSpace(string(body)),
		Cover:          cover,
		Author:         matter.Author,
		Date:           matter.Date,
		Category:       model.NormalizeCategory(matter.Category, model.CategoryAdventure),
		ReadTime:       matter.ReadTime,
		Tags:           matter.Tags,
		SEOTitle:       matter.SEOTitle,
		SEODescription: matter.SEODesc,
		Status:         status,
	}, nil
}
