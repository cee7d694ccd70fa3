// Package media locates demo clips on disk and exports them for download.
package media

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	ErrOutsideLibrary = errors.New("media ref escapes library")
	ErrNoMedia        = errors.New("media not found")
)

// ClipPattern matches the video containers the studio plays.
const ClipPattern = "**/*.{mov,mp4,webm}"

// RoutePrefix is where the web studio serves the library.
const RoutePrefix = "/vids/"

// Library is a directory of clips. Refs are slash-separated paths such as
// "vids/derivatives.mov"; they resolve against the root directly or, when
// that misses, by base name.
type Library struct {
	root string
}

// NewLibrary returns a library rooted at dir.
func NewLibrary(dir string) *Library {
	return &Library{root: filepath.Clean(dir)}
}

// Root returns the library directory.
func (l *Library) Root() string { return l.root }

// FS exposes the library for http.FileServer.
func (l *Library) FS() fs.FS { return os.DirFS(l.root) }

// Resolve maps ref to a file under the root.
func (l *Library) Resolve(ref string) (string, error) {
	rel, err := l.relative(ref)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.root, filepath.FromSlash(rel)), nil
}

// URL returns the web path of ref, falling back to the ref itself when the
// clip is not in the library.
func (l *Library) URL(ref string) string {
	rel, err := l.relative(ref)
	if err != nil {
		return ref
	}
	return RoutePrefix + rel
}

func (l *Library) relative(ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("%w: empty ref", ErrNoMedia)
	}
	clean := path.Clean(filepath.ToSlash(ref))
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %s", ErrOutsideLibrary, ref)
	}

	for _, candidate := range []string{clean, path.Base(clean)} {
		info, err := os.Stat(filepath.Join(l.root, filepath.FromSlash(candidate)))
		if err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrNoMedia, ref, l.root)
}

// List returns every clip in the library, relative to the root and sorted.
func (l *Library) List() ([]string, error) {
	matches, err := doublestar.Glob(l.FS(), ClipPattern)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	slices.Sort(matches)
	return matches, nil
}

// Missing returns the refs that do not resolve, in input order.
func (l *Library) Missing(refs []string) []string {
	var missing []string
	for _, ref := range refs {
		if _, err := l.relative(ref); err != nil {
			missing = append(missing, ref)
		}
	}
	return missing
}

// Export copies ref into destDir under filename and returns the written path.
func (l *Library) Export(ref, destDir, filename string) (string, error) {
	src, err := l.Resolve(ref)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("export: create dir: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	defer in.Close()

	dest := filepath.Join(destDir, filepath.Base(filename))
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", fmt.Errorf("export: copy: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return dest, nil
}
