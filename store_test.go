package inkpress

import (
	"errors"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "blog.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	post := Post{
		Slug:        "2021-10-29-background-jobs-in-rails",
		Layout:      "post",
		Title:       "Background Jobs in Rails",
		Date:        "2021-10-29",
		Description: "Everything about Sidekiq and ActiveJob",
		Img:         "background-jobs.jpg",
		Tags:        []string{"Ruby", "Rails", "Sidekiq", "ActiveJob", "Redis"},
		Body:        "# Setup\n\nInstall Redis first.",
		Published:   true,
	}

	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	got, err := s.GetPost(post.Slug)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}

	if got.Slug != post.Slug {
		t.Errorf("Slug = %q, want %q", got.Slug, post.Slug)
	}
	if got.Title != post.Title {
		t.Errorf("Title = %q, want %q", got.Title, post.Title)
	}
	if got.Date != post.Date {
		t.Errorf("Date = %q, want %q", got.Date, post.Date)
	}
	if got.Layout != "post" {
		t.Errorf("Layout = %q, want %q", got.Layout, "post")
	}
	if got.Description != post.Description {
		t.Errorf("Description = %q, want %q", got.Description, post.Description)
	}
	if got.Img != post.Img {
		t.Errorf("Img = %q, want %q", got.Img, post.Img)
	}
	if got.Body != post.Body {
		t.Errorf("Body = %q, want %q", got.Body, post.Body)
	}
	if got.Link != "/blog/"+post.Slug {
		t.Errorf("Link = %q, want %q", got.Link, "/blog/"+post.Slug)
	}
	if !got.Published {
		t.Error("Published should be true")
	}
	// Tags come back exactly as authored.
	want := []string{"Ruby", "Rails", "Sidekiq", "ActiveJob", "Redis"}
	if len(got.Tags) != len(want) {
		t.Fatalf("Tags = %v, want %v", got.Tags, want)
	}
	for i := range want {
		if got.Tags[i] != want[i] {
			t.Errorf("Tags[%d] = %q, want %q", i, got.Tags[i], want[i])
		}
	}
}

func TestSavePostUpdate(t *testing.T) {
	s := setupTestStore(t)

	post := Post{
		Slug:      "2024-01-01-original",
		Title:     "Original Title",
		Date:      "2024-01-01",
		Tags:      []string{"original"},
		Published: true,
	}

	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	post.Title = "Updated Title"
	post.Tags = []string{"updated", "modified"}
	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost update failed: %v", err)
	}

	got, err := s.GetPost(post.Slug)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}

	if got.Title != "Updated Title" {
		t.Errorf("Title = %q, want %q", got.Title, "Updated Title")
	}
	if len(got.Tags) != 2 {
		t.Errorf("Tags count = %d, want 2", len(got.Tags))
	}

	n, err := s.CountPosts()
	if err != nil {
		t.Fatalf("CountPosts failed: %v", err)
	}
	if n != 1 {
		t.Errorf("CountPosts = %d, want 1 (update must not duplicate)", n)
	}
}

func TestGetPostNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetPost("2024-01-01-nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPostUnpublished(t *testing.T) {
	s := setupTestStore(t)

	post := Post{
		Slug:      "2024-01-01-draft",
		Title:     "Draft Post",
		Date:      "2024-01-01",
		Published: false,
	}

	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	if _, err := s.GetPost(post.Slug); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPost should return ErrNotFound for drafts, got %v", err)
	}

	got, err := s.GetPostAny(post.Slug)
	if err != nil {
		t.Fatalf("GetPostAny failed: %v", err)
	}
	if got.Published {
		t.Error("Published should be false")
	}
}

func TestListPostsOrderAndCardinality(t *testing.T) {
	s := setupTestStore(t)

	posts := []Post{
		{Slug: "2024-01-01-post-1", Title: "Post 1", Date: "2024-01-01", Tags: []string{"go"}, Published: true},
		{Slug: "2024-01-02-post-2", Title: "Post 2", Date: "2024-01-02", Tags: []string{"go", "web"}, Published: true},
		{Slug: "2024-01-03-post-3", Title: "Post 3", Date: "2024-01-03", Tags: []string{"rust"}, Published: true},
		{Slug: "2024-01-04-post-4", Title: "Post 4", Date: "2024-01-04", Tags: []string{"go"}, Published: false},
	}

	for _, p := range posts {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	got, err := s.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("ListPosts count = %d, want 3 (excluding drafts)", len(got))
	}
	if got[0].Slug != "2024-01-03-post-3" {
		t.Errorf("first post should be the latest, got %s", got[0].Slug)
	}
	seen := make(map[string]int)
	for _, p := range got {
		seen[p.Slug]++
	}
	for slug, n := range seen {
		if n != 1 {
			t.Errorf("post %s appears %d times, want exactly once", slug, n)
		}
	}
}

func TestListPostsByTag(t *testing.T) {
	s := setupTestStore(t)

	posts := []Post{
		{Slug: "2024-01-01-go-post-1", Title: "Go Post 1", Date: "2024-01-01", Tags: []string{"go", "tutorial"}, Published: true},
		{Slug: "2024-01-02-go-post-2", Title: "Go Post 2", Date: "2024-01-02", Tags: []string{"go", "web"}, Published: true},
		{Slug: "2024-01-03-rust-post", Title: "Rust Post", Date: "2024-01-03", Tags: []string{"rust"}, Published: true},
	}

	for _, p := range posts {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	got, err := s.ListPosts("go")
	if err != nil {
		t.Fatalf("ListPosts with tag failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ListPosts(go) count = %d, want 2", len(got))
	}

	got, err = s.ListPosts("nonexistent")
	if err != nil {
		t.Fatalf("ListPosts with tag failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListPosts(nonexistent) count = %d, want 0", len(got))
	}
}

func TestListPostsKeepsAuthoredTagCase(t *testing.T) {
	s := setupTestStore(t)

	post := Post{
		Slug:      "2021-10-29-background-jobs-in-rails",
		Title:     "Background Jobs in Rails",
		Date:      "2021-10-29",
		Tags:      []string{"Ruby", "Rails", "Sidekiq", "ActiveJob", "Redis"},
		Published: true,
	}
	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	got, err := s.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListPosts count = %d, want exactly 1", len(got))
	}
	want := []string{"Ruby", "Rails", "Sidekiq", "ActiveJob", "Redis"}
	if len(got[0].Tags) != len(want) {
		t.Fatalf("Tags = %v, want %v", got[0].Tags, want)
	}
	for i := range want {
		if got[0].Tags[i] != want[i] {
			t.Errorf("Tags[%d] = %q, want %q", i, got[0].Tags[i], want[i])
		}
	}
}

func TestListPostsTagCaseInsensitive(t *testing.T) {
	s := setupTestStore(t)

	post := Post{
		Slug:      "2024-01-01-case-test",
		Title:     "Case Test",
		Date:      "2024-01-01",
		Tags:      []string{"GoLang", "WEB"},
		Published: true,
	}

	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	got, err := s.ListPosts("golang")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("ListPosts(golang) should find post with GoLang tag, got %d", len(got))
	}

	got, err = s.ListPosts("WEB")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("ListPosts(WEB) should find post with WEB tag, got %d", len(got))
	}
}

func TestListAllPosts(t *testing.T) {
	s := setupTestStore(t)

	posts := []Post{
		{Slug: "2024-01-01-published", Title: "Published", Date: "2024-01-01", Published: true},
		{Slug: "2024-01-02-draft", Title: "Draft", Date: "2024-01-02", Published: false},
	}

	for _, p := range posts {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	got, err := s.ListAllPosts()
	if err != nil {
		t.Fatalf("ListAllPosts failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ListAllPosts count = %d, want 2 (including drafts)", len(got))
	}
}

func TestListTags(t *testing.T) {
	s := setupTestStore(t)

	posts := []Post{
		{Slug: "2024-01-01-p1", Title: "P1", Date: "2024-01-01", Tags: []string{"Go", "Web"}, Published: true},
		{Slug: "2024-01-02-p2", Title: "P2", Date: "2024-01-02", Tags: []string{"go", "api"}, Published: true},
		{Slug: "2024-01-03-p3", Title: "P3", Date: "2024-01-03", Tags: []string{"rust"}, Published: false},
	}

	for _, p := range posts {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	got, err := s.ListTags()
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}

	expected := []string{"api", "go", "web"}
	if len(got) != len(expected) {
		t.Fatalf("ListTags = %v, want %v", got, expected)
	}
	for i, tag := range expected {
		if got[i] != tag {
			t.Errorf("ListTags[%d] = %q, want %q", i, got[i], tag)
		}
	}
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)

	post := Post{Slug: "2024-01-01-to-delete", Title: "To Delete", Date: "2024-01-01", Published: true}
	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	if _, err := s.GetPost(post.Slug); err != nil {
		t.Fatalf("Post should exist before delete: %v", err)
	}

	if err := s.DeletePost(post.Slug); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}

	if _, err := s.GetPost(post.Slug); !errors.Is(err, ErrNotFound) {
		t.Errorf("Post should not exist after delete, got err: %v", err)
	}
}

func TestDeleteNonexistentPost(t *testing.T) {
	s := setupTestStore(t)

	if err := s.DeletePost("2024-01-01-nonexistent"); err != nil {
		t.Errorf("DeletePost on nonexistent should not error, got: %v", err)
	}
}

func TestEmptyTags(t *testing.T) {
	s := setupTestStore(t)

	post := Post{Slug: "2024-01-01-no-tags", Title: "No Tags", Date: "2024-01-01", Tags: []string{}, Published: true}
	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	got, err := s.GetPost(post.Slug)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if len(got.Tags) != 0 {
		t.Errorf("Tags should be empty, got %v", got.Tags)
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{",", nil},
		{",go,", []string{"go"}},
		{",go,web,", []string{"go", "web"}},
		{",go, web ,rust,", []string{"go", "web", "rust"}},
	}

	for _, tt := range tests {
		got := ParseTags(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseTags(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestSaveAndListImages(t *testing.T) {
	s := setupTestStore(t)

	img := Image{
		Filename:     "cover.jpg",
		OriginalName: "Cover Photo.png",
		Width:        800,
		Height:       600,
		Size:         12345,
		UploadedAt:   "2024-01-01T00:00:00Z",
	}
	if err := s.SaveImage(img); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	images, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 1 || images[0].Filename != "cover.jpg" {
		t.Fatalf("ListImages = %v, want one cover.jpg", images)
	}

	if err := s.DeleteImage("cover.jpg"); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	images, err = s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 0 {
		t.Errorf("ListImages after delete = %v, want empty", images)
	}
}
