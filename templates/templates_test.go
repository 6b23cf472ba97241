package templates

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wblog/content"
)

func TestLoad(t *testing.T) {
	if _, err := Load("testdata/templates"); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoadMissingMainTemplate(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, PostTemplate), "<html></html>")

	_, err := Load(dir)
	if !errors.Is(err, ErrNoMainTemplate) {
		t.Fatalf("expected ErrNoMainTemplate, got %v", err)
	}
}

func TestLoadMissingPostTemplate(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, MainTemplate), "<html></html>")

	_, err := Load(dir)
	if !errors.Is(err, ErrNoPostTemplate) {
		t.Fatalf("expected ErrNoPostTemplate, got %v", err)
	}
}

func TestNewPostModelModesDifferOnlyInRootPage(t *testing.T) {
	post := samplePost()

	packed := NewPostModel(post, "index.html")
	served := NewPostModel(post, "/")

	if packed.RootPage != "index.html" || served.RootPage != "/" {
		t.Fatalf("root page literals mismatch: %q, %q", packed.RootPage, served.RootPage)
	}
	served.RootPage = packed.RootPage
	if !equalModels(packed, served) {
		t.Fatalf("models differ beyond RootPage:\npack:  %+v\nserve: %+v", packed, served)
	}
}

func TestNewListingModel(t *testing.T) {
	meta := content.PostMetadata{
		Title:    "First Post",
		Date:     date(t, "2020-01-01 10:00"),
		Tags:     []content.Tag{"go"},
		Summary:  "s",
		Author:   "a",
		FileName: "post-1.md",
	}

	model := NewListingModel(meta, "/posts", "/")

	if model.FileName != "/posts/post-1" {
		t.Fatalf("listing route mismatch, got %q", model.FileName)
	}
	if model.Content != "" || model.Favorite || model.Year != "" {
		t.Fatalf("listing model carries full-post fields: %+v", model)
	}
	if model.RootPage != "/" {
		t.Fatalf("listing root page mismatch, got %q", model.RootPage)
	}
}

func TestRenderPostFormatsDateAtRenderTime(t *testing.T) {
	set, err := Load("testdata/templates")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	page, err := set.RenderPost(NewPostModel(samplePost(), "/"))
	if err != nil {
		t.Fatalf("RenderPost: %v", err)
	}
	if !strings.Contains(page, "2020-01-01 10:00") {
		t.Fatalf("date not rendered in the authoring layout: %q", page)
	}
	if !strings.Contains(page, "<p>hello</p>") {
		t.Fatalf("post body escaped or missing: %q", page)
	}
}

func TestRenderMain(t *testing.T) {
	set, err := Load("testdata/templates")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	blog := content.Blog{
		Title:       "T",
		Twitter:     "@t",
		Author:      "A",
		Year:        2024,
		HomeContent: "<p>home</p>",
	}
	model := NewMainModel(blog, []PostModel{NewPostModel(samplePost(), "index.html")})

	page, err := set.RenderMain(model)
	if err != nil {
		t.Fatalf("RenderMain: %v", err)
	}
	if !strings.Contains(page, "<p>home</p>") {
		t.Fatalf("home content escaped or missing: %q", page)
	}
	if !strings.Contains(page, `href="first.html"`) {
		t.Fatalf("post link missing: %q", page)
	}
}

func samplePost() content.Post {
	return content.Post{
		Title:    "First",
		Date:     content.DateTime{Time: time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)},
		Tags:     []content.Tag{"go", "blogging"},
		Summary:  "s",
		Author:   "a",
		Favorite: true,
		Content:  "<p>hello</p>",
		FileName: "first.html",
		Year:     "2020",
	}
}

func date(t *testing.T, value string) content.DateTime {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("parsing %q: %v", value, err)
	}
	return content.DateTime{Time: parsed.UTC()}
}

func equalModels(a, b PostModel) bool {
	return a.Title == b.Title &&
		a.Date.Equal(b.Date.Time) &&
		len(a.Tags) == len(b.Tags) &&
		a.Summary == b.Summary &&
		a.RootPage == b.RootPage &&
		a.Content == b.Content &&
		a.Favorite == b.Favorite &&
		a.FileName == b.FileName &&
		a.Author == b.Author &&
		a.Year == b.Year
}

func mustWrite(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
