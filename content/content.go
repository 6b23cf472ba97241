// Package content loads a blog from a directory of markdown documents: a
// reserved home document at the root and posts with YAML front matter under
// a posts subdirectory. Non-markdown files next to the posts are collected
// as assets.
package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/rs/zerolog/log"
)

const (
	// HomeFile is the reserved document holding the blog front page.
	HomeFile = "home.md"
	// PostsDir is the subdirectory of the content tree holding the posts.
	PostsDir = "posts"

	markdownExt = ".md"
	outputExt   = ".html"
)

// ErrNoFrontMatter reports a markdown document without a front-matter
// block. It is always wrapped with the offending file path.
var ErrNoFrontMatter = errors.New("no front matter")

// timeLayout is the only accepted publish timestamp format.
const timeLayout = "2006-01-02 15:04"

// DateTime is a post publish timestamp with minute precision, always UTC.
type DateTime struct {
	time.Time
}

// UnmarshalYAML decodes a timestamp, requiring the exact
// "YYYY-MM-DD HH:MM" layout. Anything else fails the load.
func (d *DateTime) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", raw, err)
	}
	d.Time = t.UTC()
	return nil
}

// String renders the timestamp back in the authoring layout. Templates
// rely on this when interpolating a post date.
func (d DateTime) String() string {
	return d.Format(timeLayout)
}

// Tag is an opaque post label. Order within a post is preserved.
type Tag string

// Post is a fully loaded blog post: its front-matter fields plus the body
// already converted to HTML. Posts are immutable once loaded.
type Post struct {
	Title    string   `yaml:"title"`
	Date     DateTime `yaml:"date"`
	Tags     []Tag    `yaml:"tags"`
	Summary  string   `yaml:"summary"`
	Author   string   `yaml:"author"`
	Favorite bool     `yaml:"favorite"`

	// Derived at load time, never present in front matter.
	Content  string `yaml:"-"`
	FileName string `yaml:"-"`
	Year     string `yaml:"-"`
}

// PostMetadata is the listing subset of a post. No body conversion is paid
// for content the index never displays.
type PostMetadata struct {
	Title   string   `yaml:"title"`
	Date    DateTime `yaml:"date"`
	Tags    []Tag    `yaml:"tags"`
	Summary string   `yaml:"summary"`
	Author  string   `yaml:"author"`

	// FileName is the base name of the source file, .md extension
	// included. Callers derive routes and output names from it.
	FileName string `yaml:"-"`
}

// Blog aggregates the home document, the posts sorted newest first and the
// assets discovered next to them. It is built fresh on every load and
// never mutated afterwards.
type Blog struct {
	Title   string `yaml:"title"`
	Twitter string `yaml:"twitter"`
	Author  string `yaml:"author"`
	Year    int    `yaml:"year"`

	HomeContent string   `yaml:"-"`
	Posts       []Post   `yaml:"-"`
	Assets      []string `yaml:"-"`
}

// entryKind classifies a file of the posts directory.
type entryKind int

const (
	kindSkipped entryKind = iota
	kindContent
	kindAsset
)

// classify decides how a posts-directory file takes part in the blog:
// markdown is content, any other extension is an asset, a file without an
// extension is silently skipped.
func classify(name string) entryKind {
	switch ext := filepath.Ext(name); {
	case ext == markdownExt:
		return kindContent
	case ext != "":
		return kindAsset
	default:
		return kindSkipped
	}
}

// scanDir enumerates the files of dir, non-recursively, and hands each one
// to visit together with its classification. Directories are skipped, not
// descended.
func scanDir(dir string, visit func(path string, kind entryKind) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading posts directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		log.Debug().Str("path", path).Msg("Found file")
		if err := visit(path, classify(entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// ReadBlog loads the whole content tree under dir: the home document,
// every post and every co-located asset. Posts come back sorted newest
// first; ties keep their directory order so repeated loads produce
// identical output.
func ReadBlog(dir string) (*Blog, error) {
	var posts []Post
	var assets []string
	err := scanDir(filepath.Join(dir, PostsDir), func(path string, kind entryKind) error {
		switch kind {
		case kindContent:
			post, err := ReadPostFile(path)
			if err != nil {
				return err
			}
			posts = append(posts, *post)
		case kindAsset:
			assets = append(assets, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date.Time)
	})

	blog, err := ReadHome(dir)
	if err != nil {
		return nil, err
	}
	blog.Posts = posts
	blog.Assets = assets
	return blog, nil
}

// ReadHome loads the reserved home document at the root of dir. Its body
// becomes the front page HTML; its front matter carries the blog-wide
// fields.
func ReadHome(dir string) (*Blog, error) {
	path := filepath.Join(dir, HomeFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading home document: %w", err)
	}
	var blog Blog
	body, err := decodeFrontMatter(path, string(raw), &blog)
	if err != nil {
		return nil, err
	}
	if err := blog.checkRequired(path); err != nil {
		return nil, err
	}
	blog.HomeContent = string(ToHTML([]byte(body)))
	return &blog, nil
}

// ReadPostFile loads a single post from path: front matter, converted HTML
// body, derived output file name and publish year.
func ReadPostFile(path string) (*Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading post: %w", err)
	}
	var post Post
	body, err := decodeFrontMatter(path, string(raw), &post)
	if err != nil {
		return nil, err
	}
	if err := post.checkRequired(path); err != nil {
		return nil, err
	}
	post.Content = string(ToHTML([]byte(body)))
	post.FileName = strings.TrimSuffix(filepath.Base(path), markdownExt) + outputExt
	post.Year = strconv.Itoa(post.Date.Year())
	return &post, nil
}

// ReadPostMetadata loads only the front matter of the post at path,
// skipping the markdown conversion entirely.
func ReadPostMetadata(path string) (*PostMetadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading post: %w", err)
	}
	var meta PostMetadata
	if _, err := decodeFrontMatter(path, string(raw), &meta); err != nil {
		return nil, err
	}
	if err := meta.checkRequired(path); err != nil {
		return nil, err
	}
	meta.FileName = filepath.Base(path)
	return &meta, nil
}

// ReadPostsMetadata loads the metadata of every post under postsDir,
// sorted newest first with stable ties. Non-markdown files are ignored.
func ReadPostsMetadata(postsDir string) ([]PostMetadata, error) {
	var metadata []PostMetadata
	err := scanDir(postsDir, func(path string, kind entryKind) error {
		if kind != kindContent {
			return nil
		}
		meta, err := ReadPostMetadata(path)
		if err != nil {
			return err
		}
		metadata = append(metadata, *meta)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(metadata, func(i, j int) bool {
		return metadata[i].Date.After(metadata[j].Date.Time)
	})
	return metadata, nil
}

// decodeFrontMatter runs the splitter over raw and decodes the extracted
// block into out. An empty block is a hard failure: a document without
// front matter never becomes a partial record.
func decodeFrontMatter(path, raw string, out interface{}) (body string, err error) {
	fm, body := SplitFrontMatter(raw)
	if fm == "" {
		return "", fmt.Errorf("%w in %s", ErrNoFrontMatter, path)
	}
	if _, err := frontmatter.Parse(strings.NewReader(fm+"\n"), out); err != nil {
		return "", fmt.Errorf("decoding front matter of %s: %w", path, err)
	}
	return body, nil
}

func (p *Post) checkRequired(path string) error {
	switch {
	case p.Title == "":
		return missingField(path, "title")
	case p.Date.IsZero():
		return missingField(path, "date")
	case p.Tags == nil:
		return missingField(path, "tags")
	case p.Summary == "":
		return missingField(path, "summary")
	case p.Author == "":
		return missingField(path, "author")
	}
	return nil
}

func (m *PostMetadata) checkRequired(path string) error {
	switch {
	case m.Title == "":
		return missingField(path, "title")
	case m.Date.IsZero():
		return missingField(path, "date")
	case m.Tags == nil:
		return missingField(path, "tags")
	case m.Summary == "":
		return missingField(path, "summary")
	case m.Author == "":
		return missingField(path, "author")
	}
	return nil
}

func (b *Blog) checkRequired(path string) error {
	switch {
	case b.Title == "":
		return missingField(path, "title")
	case b.Twitter == "":
		return missingField(path, "twitter")
	case b.Author == "":
		return missingField(path, "author")
	case b.Year == 0:
		return missingField(path, "year")
	}
	return nil
}

func missingField(path, field string) error {
	return fmt.Errorf("decoding front matter of %s: missing field %q", path, field)
}
