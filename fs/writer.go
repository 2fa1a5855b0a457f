// Package fs persists rendered article artifacts to the local filesystem.
package fs

import (
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/dailybulletin/bulletin"
)

// MaxSlugLen caps filename slugs derived from article titles.
const MaxSlugLen = 100

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Slug converts an article title into a filesystem-safe name: runs of
// non-alphanumeric characters collapse to single hyphens, the result is
// lower-cased and truncated to MaxSlugLen. Returns "" for titles with no
// usable characters.
func Slug(title string) string {
	s := nonAlnum.ReplaceAllString(title, "-")
	s = strings.Trim(s, "-")
	s = strings.ToLower(s)
	if len(s) > MaxSlugLen {
		s = strings.Trim(s[:MaxSlugLen], "-")
	}
	return s
}

// ArtifactName derives a filename for a rendered document. Titled documents
// use the title slug; untitled ones fall back to a hash of the source URL so
// repeated runs of the same page land on the same file.
func ArtifactName(doc *bulletin.RenderedDocument) string {
	name := Slug(doc.Title)
	if name == "" {
		name = "article-" + strconv.FormatUint(xxhash.Sum64String(doc.URL), 16)
	}
	return name + extension(doc.Format)
}

// CaptureName derives a filename for a full-page capture from its URL,
// host and path flattened into one slug.
// Example: https://example.com/news/today → example-com-news-today.pdf
func CaptureName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "capture-" + strconv.FormatUint(xxhash.Sum64String(rawURL), 16) + ".pdf"
	}
	name := Slug(u.Host + " " + u.Path)
	if name == "" {
		name = "capture-" + strconv.FormatUint(xxhash.Sum64String(rawURL), 16)
	}
	return name + ".pdf"
}

func extension(format bulletin.ArtifactFormat) string {
	switch format {
	case bulletin.FormatMarkdown:
		return ".md"
	default:
		return ".pdf"
	}
}

// Ensure Writer implements bulletin.ArtifactWriter at compile time.
var _ bulletin.ArtifactWriter = (*Writer)(nil)

// Writer writes rendered documents into a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a Writer rooted at baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteArtifact writes the document and returns the path written. When path
// is empty the filename is derived from the document via ArtifactName;
// relative paths are resolved against the writer's base directory.
func (w *Writer) WriteArtifact(doc *bulletin.RenderedDocument, path string) (string, error) {
	if path == "" {
		path = ArtifactName(doc)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.baseDir, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", bulletin.Errorf(bulletin.ERENDER, "creating output directory: %v", err)
	}
	if err := os.WriteFile(path, doc.Data, 0644); err != nil {
		return "", bulletin.Errorf(bulletin.ERENDER, "writing artifact: %v", err)
	}

	return path, nil
}
