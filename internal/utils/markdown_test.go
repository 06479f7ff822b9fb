package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	out := string(RenderMarkdown("**bold** text"))
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("markdown not rendered: %q", out)
	}
}

func TestRenderMarkdownSanitizesScript(t *testing.T) {
	out := string(RenderMarkdown(`hello <script>alert("x")</script>`))
	if strings.Contains(out, "<script>") {
		t.Errorf("script tag survived sanitization: %q", out)
	}
}

func TestRenderMarkdownEnhancesLinks(t *testing.T) {
	out := string(RenderMarkdown("[link](https://example.com)"))
	if !strings.Contains(out, `rel="noopener noreferrer"`) {
		t.Errorf("external link missing rel attributes: %q", out)
	}
}
