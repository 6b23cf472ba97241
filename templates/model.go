package templates

import (
	"html/template"
	"strings"

	"wblog/content"
)

// MainModel is the template-facing shape of the blog front page.
type MainModel struct {
	Title       string
	Twitter     string
	HomeContent template.HTML
	Author      string
	Year        int
	Posts       []PostModel
}

// PostModel is the template-facing shape of a post, shared between the
// front-page listing and the standalone post page. The Date field keeps
// its DateTime type so the timestamp is formatted when the template
// interpolates it, not when the post is loaded.
type PostModel struct {
	Title    string
	Date     content.DateTime
	Tags     []content.Tag
	Summary  string
	RootPage string
	Content  template.HTML
	Favorite bool
	FileName string
	Author   string
	Year     string
}

// NewPostModel maps a loaded post to its template model. rootPage is the
// link back to the front page and is the only field that differs between
// packed and served output of the same post.
func NewPostModel(post content.Post, rootPage string) PostModel {
	return PostModel{
		Title:    post.Title,
		Date:     post.Date,
		Tags:     post.Tags,
		Summary:  post.Summary,
		RootPage: rootPage,
		Content:  template.HTML(post.Content),
		Favorite: post.Favorite,
		FileName: post.FileName,
		Author:   post.Author,
		Year:     post.Year,
	}
}

// NewListingModel maps post metadata to the model the front-page listing
// consumes: no body, no favorite flag, no year, and a file name that is
// already the route of the post under postsRoute.
func NewListingModel(meta content.PostMetadata, postsRoute, rootPage string) PostModel {
	return PostModel{
		Title:    meta.Title,
		Date:     meta.Date,
		Tags:     meta.Tags,
		Summary:  meta.Summary,
		RootPage: rootPage,
		FileName: postsRoute + "/" + strings.TrimSuffix(meta.FileName, ".md"),
		Author:   meta.Author,
	}
}

// NewMainModel maps the home document and an already mapped post sequence
// to the front page model.
func NewMainModel(blog content.Blog, posts []PostModel) MainModel {
	return MainModel{
		Title:       blog.Title,
		Twitter:     blog.Twitter,
		HomeContent: template.HTML(blog.HomeContent),
		Author:      blog.Author,
		Year:        blog.Year,
		Posts:       posts,
	}
}
