package content

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// AssetRoute is the path segment prefixed to every image URL found in a
// post body, so that authors can reference co-located files by bare name
// regardless of how the blog ends up published.
const AssetRoute = "post_assets"

// ToHTML converts markdown to HTML. Strikethrough is the only extension
// enabled; image source URLs are rewritten under AssetRoute, nothing else
// is touched.
func ToHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.NoExtensions | parser.Strikethrough)
	doc := p.Parse(md)
	rewriteImageURLs(doc)

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

func rewriteImageURLs(doc ast.Node) {
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if img, ok := node.(*ast.Image); ok && entering {
			img.Destination = []byte(AssetRoute + "/" + string(img.Destination))
		}
		return ast.GoToNext
	})
}
