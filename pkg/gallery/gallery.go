// Package gallery stores the photo-frame images. Each of the MaxImages
// slots holds at most one file named <index><ext>.
package gallery

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// MaxImages is the number of slots.
const MaxImages = 10

var (
	// ErrInvalidIndex indicates an index outside 1..MaxImages.
	ErrInvalidIndex = fmt.Errorf("invalid index, must be 1-%d", MaxImages)

	// ErrNotFound indicates an empty slot or unknown file.
	ErrNotFound = errors.New("image not found")
)

// Extensions lists the accepted file extensions in lookup order.
var Extensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

var mimeToExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var extToMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Image describes a stored image.
type Image struct {
	Index    int    `json:"index"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Gallery is a directory of slot images.
type Gallery struct {
	mu        sync.Mutex
	dir       string
	urlPrefix string
}

// New creates a gallery rooted at dir. URLs are built as urlPrefix/<file>.
func New(dir, urlPrefix string) *Gallery {
	return &Gallery{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}
}

// Dir returns the storage directory.
func (g *Gallery) Dir() string {
	return g.dir
}

// ValidIndex reports whether index names a slot.
func ValidIndex(index int) bool {
	return index >= 1 && index <= MaxImages
}

// Extension picks the stored extension from the upload's filename, falling
// back to its content type, then to .jpg. ".jpeg" is stored as ".jpg".
func Extension(filename, contentType string) string {
	if filename != "" {
		ext := strings.ToLower(filepath.Ext(filename))
		switch ext {
		case ".jpeg":
			return ".jpg"
		case ".jpg", ".png", ".gif", ".webp":
			return ext
		}
		return ".jpg"
	}
	if ext, ok := mimeToExt[strings.ToLower(strings.TrimSpace(contentType))]; ok {
		return ext
	}
	return ".jpg"
}

// Upload stores data in slot index, replacing whatever the slot held
// under any extension.
func (g *Gallery) Upload(index int, data []byte, filename, contentType string) (Image, error) {
	if !ValidIndex(index) {
		return Image{}, ErrInvalidIndex
	}
	name := strconv.Itoa(index) + Extension(filename, contentType)

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return Image{}, fmt.Errorf("failed to create gallery directory: %w", err)
	}

	tmp, err := os.CreateTemp(g.dir, ".upload-*")
	if err != nil {
		return Image{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return Image{}, fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Image{}, fmt.Errorf("failed to write image: %w", err)
	}

	if err := g.removeSlot(index); err != nil {
		return Image{}, err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(g.dir, name)); err != nil {
		return Image{}, fmt.Errorf("failed to store image: %w", err)
	}

	return g.image(index, name), nil
}

// Delete empties slot index. It reports whether a file was removed.
func (g *Gallery) Delete(index int) (bool, error) {
	if !ValidIndex(index) {
		return false, ErrInvalidIndex
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	name, ok := g.find(index)
	if !ok {
		return false, nil
	}
	if err := os.Remove(filepath.Join(g.dir, name)); err != nil {
		return false, fmt.Errorf("failed to delete image: %w", err)
	}
	return true, nil
}

// List returns the filled slots in index order.
func (g *Gallery) List() []Image {
	g.mu.Lock()
	defer g.mu.Unlock()

	images := []Image{}
	for i := 1; i <= MaxImages; i++ {
		if name, ok := g.find(i); ok {
			images = append(images, g.image(i, name))
		}
	}
	return images
}

// Open resolves a requested file name to its path and content type. Only
// names of the form <index><ext> are served.
func (g *Gallery) Open(name string) (string, string, error) {
	if name != path.Base(name) {
		return "", "", ErrNotFound
	}
	ext := strings.ToLower(filepath.Ext(name))
	contentType, ok := extToMIME[ext]
	if !ok {
		return "", "", ErrNotFound
	}
	index, err := strconv.Atoi(strings.TrimSuffix(name, filepath.Ext(name)))
	if err != nil || !ValidIndex(index) {
		return "", "", ErrNotFound
	}

	p := filepath.Join(g.dir, name)
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", "", ErrNotFound
	}
	return p, contentType, nil
}

func (g *Gallery) find(index int) (string, bool) {
	for _, ext := range Extensions {
		name := strconv.Itoa(index) + ext
		if info, err := os.Stat(filepath.Join(g.dir, name)); err == nil && !info.IsDir() {
			return name, true
		}
	}
	return "", false
}

func (g *Gallery) removeSlot(index int) error {
	for _, ext := range Extensions {
		err := os.Remove(filepath.Join(g.dir, strconv.Itoa(index)+ext))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to replace image: %w", err)
		}
	}
	return nil
}

func (g *Gallery) image(index int, name string) Image {
	return Image{Index: index, Filename: name, URL: g.urlPrefix + "/" + name}
}
