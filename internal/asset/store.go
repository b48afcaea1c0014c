// Package asset resolves the icon and font files that key faces are drawn from.
//
// Layout under the root directory:
//
//	icons/<name>.png
//	fonts/<font>.ttf
package asset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DirEnv is the env var override for the assets root.
	DirEnv = "STREAMYDECK_ASSETS_DIR"
	// DefaultDir is the assets root used when neither DirEnv nor an explicit root is set.
	DefaultDir = "assets"
	// DefaultFont is the font every key face is drawn with. It ships in
	// assets/fonts.
	DefaultFont = "Go-Regular.ttf"
)

// ErrMissing reports an icon or font that does not exist on disk.
var ErrMissing = errors.New("asset not found")

// Store resolves asset paths below a root directory.
type Store struct {
	baseDir string
	font    string
}

// NewStore creates a store rooted at dir, or at the path in
// STREAMYDECK_ASSETS_DIR if set, or at DefaultDir if both are empty.
func NewStore(dir string) *Store {
	if env := os.Getenv(DirEnv); env != "" {
		dir = env
	}
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{baseDir: dir, font: DefaultFont}
}

// SetLabelFont changes the font file labels are drawn with.
func (s *Store) SetLabelFont(font string) {
	if font != "" {
		s.font = font
	}
}

// LabelFont returns the path of the label font, or an error wrapping ErrMissing.
func (s *Store) LabelFont() (string, error) {
	return s.Font(s.font)
}

// BaseDir returns the assets root.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// IconPath returns the path of an icon file name.
func (s *Store) IconPath(icon string) string {
	return filepath.Join(s.baseDir, "icons", icon)
}

// FontPath returns the path of a font file name.
func (s *Store) FontPath(font string) string {
	return filepath.Join(s.baseDir, "fonts", font)
}

// DefaultIcon is the icon file used for an element that names no icon:
// the lower-cased name with a .png extension.
func DefaultIcon(name string) string {
	return strings.ToLower(name) + ".png"
}

// Icon returns the path of icon, or an error wrapping ErrMissing.
func (s *Store) Icon(icon string) (string, error) {
	return mustExist(s.IconPath(icon))
}

// Font returns the path of font, or an error wrapping ErrMissing.
func (s *Store) Font(font string) (string, error) {
	return mustExist(s.FontPath(font))
}

func mustExist(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrMissing, path)
	}
	return path, nil
}
