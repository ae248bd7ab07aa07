// Package markdown renders assistant markdown (child summaries) to HTML.
package markdown

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Service interface {
	RenderHTML(source []byte) (string, error)
}

type service struct {
	md goldmark.Markdown
}

type Option func(*[]goldmark.Option)

// WithGFM enables GitHub flavored tables, strikethrough and task lists.
func WithGFM() Option {
	return func(opts *[]goldmark.Option) {
		*opts = append(*opts, goldmark.WithExtensions(extension.GFM))
	}
}

func NewService(opts ...Option) Service {
	gopts := []goldmark.Option{
		goldmark.WithRendererOptions(html.WithHardWraps()),
	}
	for _, opt := range opts {
		opt(&gopts)
	}
	return &service{md: goldmark.New(gopts...)}
}

// RenderHTML converts markdown to an HTML fragment. Raw HTML in the source is escaped.
func (s *service) RenderHTML(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert(source, &buf); err != nil {
		return "", errors.Wrap(err, "failed to render markdown")
	}
	return buf.String(), nil
}
