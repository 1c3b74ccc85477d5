package game

import (
	"bytes"
	"fmt"

	"github.com/decker502/folio/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Built-in font names accepted by LoadFont.
const (
	FontRegular = "goregular"
	FontBold    = "gobold"
	FontMono    = "gomono"
)

// builtinFonts maps built-in font names to their TTF data.
var builtinFonts = map[string][]byte{
	FontRegular: goregular.TTF,
	FontBold:    gobold.TTF,
	FontMono:    gomono.TTF,
}

// ResourceManager is responsible for loading and caching font faces.
//
// A font is either one of the built-in Go fonts (FontRegular, FontBold,
// FontMono) or a TTF/OTF file inside the embedded data tree
// (e.g. "data/fonts/Custom.ttf").
//
// Thread Safety Note:
// This implementation is NOT thread-safe. For the single-threaded game loop,
// no synchronization is needed.
type ResourceManager struct {
	sourceCache   map[string]*text.GoTextFaceSource // 字体源缓存: name -> source
	fontFaceCache map[string]*text.GoTextFace       // 字号缓存: name:size -> face
}

// NewResourceManager creates a ResourceManager with empty caches.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		sourceCache:   make(map[string]*text.GoTextFaceSource),
		fontFaceCache: make(map[string]*text.GoTextFace),
	}
}

// LoadFont returns a face of the given font at size, loading the source on
// first use.
func (rm *ResourceManager) LoadFont(name string, size float64) (*text.GoTextFace, error) {
	// Create cache key combining name and size
	cacheKey := fmt.Sprintf("%s:%.1f", name, size)

	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, err := rm.loadSource(name)
	if err != nil {
		return nil, err
	}

	goTextFace := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = goTextFace
	return goTextFace, nil
}

func (rm *ResourceManager) loadSource(name string) (*text.GoTextFaceSource, error) {
	if source, ok := rm.sourceCache[name]; ok {
		return source, nil
	}

	fontData, ok := builtinFonts[name]
	if !ok {
		var err error
		fontData, err = embedded.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", name, err)
		}
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", name, err)
	}
	rm.sourceCache[name] = source
	return source, nil
}

// CachedFaces returns the number of cached font faces.
func (rm *ResourceManager) CachedFaces() int {
	return len(rm.fontFaceCache)
}
