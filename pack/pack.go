// Package pack generates a static HTML tree from a blog content directory
// and a template set. A run is strictly sequential; the first failure
// aborts it and partially written output is left as is.
package pack

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"wblog/content"
	"wblog/templates"
)

const (
	assetsDir = "assets"
	mainPage  = "index.html"

	// rootPage is the link back to the front page from packed post pages.
	rootPage = "index.html"
)

// Run generates the whole static blog under outputDir: the template asset
// tree, the front page, one page per post and the post assets flattened by
// base name.
func Run(templatesDir, contentDir, outputDir string) error {
	destAssets := filepath.Join(outputDir, assetsDir)
	if err := recreateDir(destAssets); err != nil {
		return err
	}
	if err := copyDir(filepath.Join(templatesDir, assetsDir), destAssets); err != nil {
		return err
	}

	set, err := templates.Load(templatesDir)
	if err != nil {
		return err
	}
	blog, err := content.ReadBlog(contentDir)
	if err != nil {
		return err
	}

	models := make([]templates.PostModel, 0, len(blog.Posts))
	for _, post := range blog.Posts {
		models = append(models, templates.NewPostModel(post, rootPage))
	}

	page, err := set.RenderMain(templates.NewMainModel(*blog, models))
	if err != nil {
		return err
	}
	target := filepath.Join(outputDir, mainPage)
	if err := os.WriteFile(target, []byte(page), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}

	for _, model := range models {
		page, err := set.RenderPost(model)
		if err != nil {
			return err
		}
		target := filepath.Join(outputDir, model.FileName)
		if err := os.WriteFile(target, []byte(page), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
		log.Debug().Str("path", target).Msg("Wrote post page")
	}

	destPostAssets := filepath.Join(outputDir, content.AssetRoute)
	if err := recreateDir(destPostAssets); err != nil {
		return err
	}
	for _, asset := range blog.Assets {
		if err := copyFile(asset, filepath.Join(destPostAssets, filepath.Base(asset))); err != nil {
			return err
		}
	}
	return nil
}
