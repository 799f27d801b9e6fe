package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRenderMarkdownInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"`code`", "<code>code</code>"},
		{"~~gone~~", "<del>gone</del>"},
		{"[link](https://www.elian.codes)", `<a href="https://www.elian.codes">link</a>`},
	}
	for _, tt := range tests {
		got, err := ToHTML(tt.input)
		if err != nil {
			t.Fatalf("ToHTML(%q) failed: %v", tt.input, err)
		}
		if !strings.Contains(got, tt.expected) {
			t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderMarkdownHeadingIDs(t *testing.T) {
	got, err := ToHTML("# Hello World")
	if err != nil {
		t.Fatal(err)
	}
	if got != "<h1 id=\"hello-world\">Hello World</h1>\n" {
		t.Errorf("unexpected heading: %q", got)
	}
}

func TestRenderMarkdownCodeBlock(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, "```go\nfmt.Println(\"<hi>\")\n```"); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.Contains(got, `<code class="language-go">`) {
		t.Errorf("missing language class: %q", got)
	}
	if !strings.Contains(got, "&lt;hi&gt;") {
		t.Errorf("code content not escaped: %q", got)
	}
}

func TestRenderMarkdownTable(t *testing.T) {
	got, err := ToHTML("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<table>", "<th>a</th>", "<td>2</td>"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output %q missing %q", got, want)
		}
	}
}

func TestRenderMarkdownRawHTML(t *testing.T) {
	got, err := ToHTML("<div class=\"note\">hi</div>")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `<div class="note">hi</div>`) {
		t.Errorf("raw HTML not passed through: %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("plain *text*").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "<p>plain <em>text</em></p>\n" {
		t.Errorf("component rendered %q", buf.String())
	}
}
