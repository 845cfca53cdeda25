// Package cms serves the site's editorial pages (services, about,
// contact) from markdown files on disk. Files carry a YAML front matter
// block; bodies are rendered to sanitized HTML with a heading outline
// extracted for in-page navigation.
package cms

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

// Page is a rendered editorial page.
type Page struct {
	Slug        string
	Title       string
	Description string
	Updated     time.Time
	HTML        string
	TOC         []Heading
	ETag        string
}

// Heading is one entry of a page's outline, taken from the rendered h2
// and h3 elements.
type Heading struct {
	ID    string
	Text  string
	Level int
}

type frontMatter struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Updated     time.Time `yaml:"updated"`
}

// Store loads pages from a directory of <slug>.md files and caches the
// rendered result for a TTL. It is safe for concurrent use.
type Store struct {
	dir string
	ttl time.Duration

	md       goldmark.Markdown
	sanitize *bluemonday.Policy

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	page    *Page
	expires time.Time
}

// NewStore returns a Store reading from dir. A non-positive ttl disables
// caching, which is what dev mode wants.
func NewStore(dir string, ttl time.Duration) *Store {
	return &Store{
		dir: dir,
		ttl: ttl,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		sanitize: bluemonday.UGCPolicy().AllowAttrs("id").OnElements("h1", "h2", "h3", "h4"),
		cache:    map[string]cacheEntry{},
	}
}

// Page returns the rendered page for slug, serving from cache while the
// entry is fresh. Unknown slugs return os.ErrNotExist.
func (s *Store) Page(slug string) (*Page, error) {
	if !validSlug(slug) {
		return nil, os.ErrNotExist
	}

	s.mu.Lock()
	if e, ok := s.cache[slug]; ok && time.Now().Before(e.expires) {
		s.mu.Unlock()
		return e.page, nil
	}
	s.mu.Unlock()

	raw, err := os.ReadFile(filepath.Join(s.dir, slug+".md"))
	if err != nil {
		return nil, err
	}
	page, err := s.render(slug, raw)
	if err != nil {
		return nil, err
	}

	if s.ttl > 0 {
		s.mu.Lock()
		s.cache[slug] = cacheEntry{page: page, expires: time.Now().Add(s.ttl)}
		s.mu.Unlock()
	}
	return page, nil
}

// Slugs lists the available page slugs, sorted by the filesystem.
func (s *Store) Slugs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var slugs []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(e.Name(), ".md"))
	}
	return slugs, nil
}

func titleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func validSlug(slug string) bool {
	if slug == "" {
		return false
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}

func (s *Store) render(slug string, raw []byte) (*Page, error) {
	fm, body := splitFrontMatter(raw)

	var meta frontMatter
	if len(fm) > 0 {
		if err := yaml.Unmarshal(fm, &meta); err != nil {
			return nil, fmt.Errorf("cms: %s: front matter: %w", slug, err)
		}
	}
	if meta.Title == "" {
		meta.Title = titleFromSlug(slug)
	}

	var buf bytes.Buffer
	if err := s.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("cms: %s: render: %w", slug, err)
	}
	safe := s.sanitize.SanitizeBytes(buf.Bytes())

	toc, err := extractHeadings(safe)
	if err != nil {
		return nil, fmt.Errorf("cms: %s: outline: %w", slug, err)
	}

	sum := sha256.Sum256(raw)
	return &Page{
		Slug:        slug,
		Title:       meta.Title,
		Description: meta.Description,
		Updated:     meta.Updated,
		HTML:        string(safe),
		TOC:         toc,
		ETag:        `"` + hex.EncodeToString(sum[:16]) + `"`,
	}, nil
}

// splitFrontMatter separates a leading "---" delimited YAML block from
// the markdown body. Files without front matter pass through whole.
func splitFrontMatter(raw []byte) (fm, body []byte) {
	const delim = "---"
	text := string(raw)
	if !strings.HasPrefix(text, delim+"\n") && !strings.HasPrefix(text, delim+"\r\n") {
		return nil, raw
	}
	rest := text[len(delim):]
	rest = strings.TrimPrefix(rest, "\r\n")
	rest = strings.TrimPrefix(rest, "\n")
	end := strings.Index(rest, "\n"+delim)
	if end < 0 {
		return nil, raw
	}
	fmPart := rest[:end]
	bodyPart := rest[end+1+len(delim):]
	bodyPart = strings.TrimPrefix(bodyPart, "\r\n")
	bodyPart = strings.TrimPrefix(bodyPart, "\n")
	return []byte(fmPart), []byte(bodyPart)
}

// extractHeadings walks rendered HTML and collects h2/h3 headings that
// carry ids. h1 is the page title and stays out of the outline.
func extractHeadings(rendered []byte) ([]Heading, error) {
	doc, err := html.Parse(bytes.NewReader(rendered))
	if err != nil {
		return nil, err
	}
	var out []Heading
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			var level int
			switch n.Data {
			case "h2":
				level = 2
			case "h3":
				level = 3
			}
			if level > 0 {
				var id string
				for _, a := range n.Attr {
					if a.Key == "id" {
						id = a.Val
					}
				}
				if id != "" {
					out = append(out, Heading{ID: id, Text: textOf(n), Level: level})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out, nil
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
