package util

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	mdhtml "github.com/yuin/goldmark/renderer/html"
)

// 评论正文格式
const (
	FormatHTML     = 1
	FormatPlain    = 2
	FormatMarkdown = 4
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			mdhtml.WithHardWraps(),
			mdhtml.WithXHTML(),
		),
	)
	policy = bluemonday.UGCPolicy()
)

func init() {
	policy.AllowImages()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// FormatContent 按格式转为 HTML 并清洗，format 为 0 时按 HTML 处理
func FormatContent(text string, format int) string {
	var raw string
	switch format {
	case FormatPlain:
		raw = strings.ReplaceAll(html.EscapeString(text), "\n", "<br />")
	case FormatMarkdown:
		var buf bytes.Buffer
		if err := mdParser.Convert([]byte(text), &buf); err != nil {
			raw = html.EscapeString(text)
		} else {
			raw = buf.String()
		}
	default:
		raw = text
	}
	return strings.TrimSpace(policy.Sanitize(raw))
}
