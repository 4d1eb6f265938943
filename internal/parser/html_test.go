package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/docsplit/internal/doctree"
)

func TestHTMLParser_Elements(t *testing.T) {
	input := `<html><head><title>Handbook</title><style>p{}</style></head>
<body>
<nav><p>skip me</p></nav>
<h1>Policies</h1>
<p>General   rules
apply.</p>
<ul><li>one</li><li>two</li></ul>
<h2>Leave</h2>
<blockquote>quoted</blockquote>
<script>var x = 1;</script>
</body></html>`

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "handbook.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Handbook" {
		t.Errorf("expected title from <title>, got %q", doc.Title)
	}

	want := []doctree.Element{
		doctree.Heading(1, "Policies"),
		doctree.Text("General rules apply."),
		{Kind: doctree.KindListItem, Text: "one"},
		{Kind: doctree.KindListItem, Text: "two"},
		doctree.Heading(2, "Leave"),
		{Kind: doctree.KindOther, Text: "quoted"},
	}
	if len(doc.Elements) != len(want) {
		t.Fatalf("expected %d elements, got %d: %+v", len(want), len(doc.Elements), doc.Elements)
	}
	for i, w := range want {
		if doc.Elements[i] != w {
			t.Errorf("element[%d]: expected %+v, got %+v", i, w, doc.Elements[i])
		}
	}
}

func TestHTMLParser_FilenameTitleFallback(t *testing.T) {
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader("<p>x</p>"), "page.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "page" {
		t.Errorf("expected title %q, got %q", "page", doc.Title)
	}
}
