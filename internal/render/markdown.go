package render

import (
	"bytes"
	"html/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
	gocache "github.com/patrickmn/go-cache"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/cognigraph/console/pkg/logger"
)

// Markdown renders chat and agent answers to sanitized HTML. The platform's
// answers are model-generated, so everything goes through bluemonday before
// it reaches a template. Rendered fragments are memoized with a TTL since
// history pages re-render the same answers on every visit.
type Markdown struct {
	engine goldmark.Markdown
	policy *bluemonday.Policy
	memo   *gocache.Cache
}

func NewMarkdown() *Markdown {
	return &Markdown{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		policy: bluemonday.UGCPolicy(),
		memo:   gocache.New(10*time.Minute, 15*time.Minute),
	}
}

// Render converts markdown source to sanitized HTML. On a conversion error
// the raw text is returned escaped, so the answer is still readable.
func (m *Markdown) Render(source string) template.HTML {
	if cached, ok := m.memo.Get(source); ok {
		return cached.(template.HTML)
	}

	var buf bytes.Buffer
	if err := m.engine.Convert([]byte(source), &buf); err != nil {
		logger.Warn("markdown conversion failed", "error", err)
		return template.HTML(template.HTMLEscapeString(source))
	}

	out := template.HTML(m.policy.SanitizeBytes(buf.Bytes()))
	m.memo.Set(source, out, gocache.DefaultExpiration)
	return out
}
