package inkpress

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/avelar/inkpress/frontmatter"
)

// LoadDir reads every markdown file in dir, parses its front-matter, and
// returns the resulting posts ordered by date descending. Each file must
// carry a valid header (non-empty title, parseable date); a duplicate slug
// across two files is an error, so every authored post maps to exactly one
// record.
func LoadDir(dir string) ([]Post, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	seen := make(map[string]string) // slug -> filename
	var posts []Post
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if ext := filepath.Ext(name); ext != ".md" && ext != ".markdown" {
			continue
		}
		src, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		fm, body, err := frontmatter.Split(src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if err := frontmatter.Validate(fm); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		slug := PostSlug(fm.Date, fm.Title)
		if prev, ok := seen[slug]; ok {
			return nil, fmt.Errorf("duplicate slug %q in %s and %s", slug, prev, name)
		}
		seen[slug] = name

		posts = append(posts, Post{
			Slug:        slug,
			Layout:      fm.Layout,
			Title:       fm.Title,
			Date:        fm.Date,
			Description: fm.Description,
			Img:         fm.Img,
			Tags:        fm.Tags,
			Body:        body,
			Link:        "/blog/" + slug,
			Published:   true,
		})
		slog.Debug("loaded post", "file", name, "slug", slug)
	}

	sort.Slice(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].Slug < posts[j].Slug
	})
	return posts, nil
}

// SyncDir loads dir and upserts every post into the store. Returns the
// number of posts synced.
func SyncDir(store *Store, dir string) (int, error) {
	posts, err := LoadDir(dir)
	if err != nil {
		return 0, err
	}
	for _, p := range posts {
		if err := store.SavePost(p); err != nil {
			return 0, fmt.Errorf("save %s: %w", p.Slug, err)
		}
	}
	slog.Info("content synced", "dir", dir, "posts", len(posts))
	return len(posts), nil
}

// ExportPost writes a post back to dir as a front-matter markdown file named
// after its slug. Returns the file path.
func ExportPost(dir string, p Post) (string, error) {
	fm := frontmatter.FrontMatter{
		Layout:      p.Layout,
		Title:       p.Title,
		Date:        p.Date,
		Description: p.Description,
		Img:         p.Img,
		Tags:        p.Tags,
	}
	data, err := frontmatter.Encode(fm, p.Body)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, p.Slug+".md")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
