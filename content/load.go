package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalog embed.FS

// catalogFile is the on-disk layout of a catalog.
type catalogFile struct {
	Conditions   []ConditionHub `yaml:"conditions"`
	BlogPosts    []BlogPost     `yaml:"blog_posts"`
	CareServices []CareService  `yaml:"care_services"`
	LabsPanels   []LabsPanel    `yaml:"labs_panels"`
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// Default loads the catalog embedded in the binary.
func Default() (*Catalog, error) {
	f, err := defaultCatalog.Open("data/catalog.yaml")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// LoadFile loads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	cat, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Load decodes a YAML catalog, renders Markdown bodies and sanitizes every
// blog body before building the Catalog.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog is empty")
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	policy := newBodyPolicy()
	for i := range file.BlogPosts {
		p := &file.BlogPosts[i]
		body, err := renderBody(p)
		if err != nil {
			return nil, fmt.Errorf("blog post %q: %w", p.Slug, err)
		}
		p.BodyHTML = policy.Sanitize(body)
		p.BodyMarkdown = ""
	}
	return New(file.Conditions, file.BlogPosts, file.CareServices, file.LabsPanels)
}

func renderBody(p *BlogPost) (string, error) {
	hasHTML := strings.TrimSpace(p.BodyHTML) != ""
	hasMD := strings.TrimSpace(p.BodyMarkdown) != ""
	switch {
	case hasHTML && hasMD:
		return "", errors.New("set only one of body_html and body_markdown")
	case hasMD:
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(p.BodyMarkdown), &buf); err != nil {
			return "", fmt.Errorf("render markdown: %w", err)
		}
		return buf.String(), nil
	default:
		return p.BodyHTML, nil
	}
}

// newBodyPolicy allows the markup authors use in article bodies: UGC
// elements plus class attributes and heading anchors.
func newBodyPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()
	policy.AllowAttrs("id").OnElements("h2", "h3")
	policy.AllowElements("figure", "figcaption", "aside")
	policy.RequireNoFollowOnLinks(false)
	policy.RequireNoFollowOnFullyQualifiedLinks(true)
	return policy
}
