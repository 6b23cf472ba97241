package pack

import (
	"fmt"
	"regexp"
	"time"

	"github.com/radovskyb/watcher"
	"github.com/rs/zerolog/log"
)

// Watch re-packs the blog whenever a markdown file under contentDir
// changes. A rebuild failure is logged, not fatal; the watcher keeps
// running. Watch blocks until the watcher stops.
func Watch(templatesDir, contentDir, outputDir string) error {
	w := watcher.New()
	w.SetMaxEvents(1)
	// Only watch for write, create, remove, rename and move events
	w.FilterOps(watcher.Write, watcher.Create, watcher.Remove, watcher.Rename, watcher.Move)

	// Only watch for markdown files
	md := regexp.MustCompile(`^.*\.md$`)
	w.AddFilterHook(watcher.RegexFilterHook(md, false))

	go func() {
		for {
			select {
			case event := <-w.Event:
				log.Info().Str("path", event.Path).Msg("Content changed, repacking")
				if err := Run(templatesDir, contentDir, outputDir); err != nil {
					log.Error().Err(err).Msg("Repack failed")
				}
			case err := <-w.Error:
				log.Error().Err(err).Msg("Watcher error")
			case <-w.Closed:
				return
			}
		}
	}()

	if err := w.AddRecursive(contentDir); err != nil {
		return fmt.Errorf("watching %s: %w", contentDir, err)
	}
	// Check for changes every 100ms.
	return w.Start(time.Millisecond * 100)
}
