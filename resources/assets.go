package resources

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	articleFile = "article.md"
	iconDir     = "icons/"

	// TrackedMarker splits the demo article around the tracked card.
	TrackedMarker = "<!-- tracked -->"
)

//go:embed article.md
var articleFS embed.FS

//go:embed icons/*.svg
var iconFS embed.FS

var iconCache sync.Map

// Article returns the demo article split at TrackedMarker. When the marker is
// missing the whole text is returned as the lead and the tail is empty.
func Article() (lead, tail string, err error) {
	data, err := articleFS.ReadFile(articleFile)
	if err != nil {
		return "", "", fmt.Errorf("load article: %w", err)
	}
	lead, tail, _ = strings.Cut(string(data), TrackedMarker)
	return strings.TrimSpace(lead), strings.TrimSpace(tail), nil
}

// Icon returns a Fyne resource for the given icon file.
func Icon(fileName string) (fyne.Resource, error) {
	return loadResource(iconFS, iconDir+fileName, &iconCache)
}

// MustIcon returns a Fyne resource or panics on error.
func MustIcon(fileName string) fyne.Resource {
	resource, err := Icon(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

func loadResource(fs embed.FS, path string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(path, data)
	cache.Store(path, resource)
	return resource, nil
}
