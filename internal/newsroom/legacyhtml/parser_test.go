package legacyhtml

import (
	"strings"
	"testing"

	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/blocks"
)

var trusted = []string{"medieteknik.com"}

func parseString(t *testing.T, s string) *blocks.Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(s), trusted)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestParseBlocks(t *testing.T) {
	tests := []struct {
		name string
		html string
		kind blocks.Kind
		text string
	}{
		{"heading 1", "<h1>Mottagningen</h1>", blocks.Heading1, "Mottagningen"},
		{"heading 2", "<h2>Schema</h2>", blocks.Heading2, "Schema"},
		{"heading 3", "<h3>Vecka 1</h3>", blocks.Heading3, "Vecka 1"},
		{"heading 4", "<h4>Dag 1</h4>", blocks.Heading4, "Dag 1"},
		{"paragraph", "<p>hej</p>", blocks.Paragraph, "hej"},
		{"quote", "<blockquote>citat</blockquote>", blocks.Quote, "citat"},
		{"code block", "<pre>x := 1\ny := 2</pre>", blocks.MultiLineCode, "x := 1\ny := 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseString(t, tt.html)
			if len(doc.Blocks) != 1 {
				t.Fatalf("blocks = %+v", doc.Blocks)
			}
			b := doc.Blocks[0]
			if b.Kind != tt.kind || b.PlainText() != tt.text {
				t.Errorf("block = %v %q, want %v %q", b.Kind, b.PlainText(), tt.kind, tt.text)
			}
		})
	}
}

func TestParseMarks(t *testing.T) {
	doc := parseString(t, "<p>vanlig <strong>fet <em>kursiv</em></strong></p>")

	children := doc.Blocks[0].Children
	if len(children) != 3 {
		t.Fatalf("children = %+v", children)
	}

	want := []blocks.Text{
		{Content: "vanlig "},
		{Content: "fet ", Marks: blocks.Marks{Bold: true}},
		{Content: "kursiv", Marks: blocks.Marks{Bold: true, Italic: true}},
	}
	for i, w := range want {
		if children[i].(blocks.Text) != w {
			t.Errorf("children[%d] = %+v, want %+v", i, children[i], w)
		}
	}
}

func TestParseLinks(t *testing.T) {
	doc := parseString(t,
		`<p>se <a href="https://medieteknik.com/om">oss</a> och <a href="https://example.com">dem</a></p>`)

	children := doc.Blocks[0].Children

	internal, ok := children[1].(*blocks.Element)
	if !ok || internal.Kind != blocks.InternalLink || internal.PlainText() != "oss" {
		t.Errorf("children[1] = %+v", children[1])
	}
	external, ok := children[3].(*blocks.Element)
	if !ok || external.Kind != blocks.ExternalLink {
		t.Errorf("children[3] = %+v", children[3])
	}
	if external.URL != "https://example.com" {
		t.Errorf("url = %q", external.URL)
	}
}

func TestParseImage(t *testing.T) {
	doc := parseString(t, `<p><img src="/static/bild.png" alt="bild" width="640" height="480"></p>`)

	var img *blocks.Element
	for _, child := range doc.Blocks[0].Children {
		if el, ok := child.(*blocks.Element); ok && el.Kind == blocks.Image {
			img = el
		}
	}
	if img == nil {
		t.Fatalf("no image in %+v", doc.Blocks[0].Children)
	}
	if img.Image.Src != "/static/bild.png" || img.Image.Alt != "bild" || img.Image.Width != 640 {
		t.Errorf("attrs = %+v", img.Image)
	}
}

func TestParseLineBreak(t *testing.T) {
	doc := parseString(t, "<p>rad ett<br>rad två</p>")

	children := doc.Blocks[0].Children
	if len(children) != 3 {
		t.Fatalf("children = %+v", children)
	}
	br, ok := children[1].(*blocks.Element)
	if !ok || br.Kind != blocks.LineBreak {
		t.Errorf("children[1] = %+v", children[1])
	}
}

func TestParseStripsScripts(t *testing.T) {
	doc := parseString(t, `<p>säker</p><script>alert("x")</script>`)

	if len(doc.Blocks) != 1 {
		t.Fatalf("blocks = %+v", doc.Blocks)
	}
	if got := doc.Blocks[0].PlainText(); got != "säker" {
		t.Errorf("text = %q", got)
	}
}

func TestParseEmptyInput(t *testing.T) {
	doc := parseString(t, "")

	// Пустой вход нормализуется в каноничный пустой документ.
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != blocks.Heading1 {
		t.Errorf("blocks = %+v", doc.Blocks)
	}
}

func TestParseAdjacentTextMerged(t *testing.T) {
	// После снятия незнакомого тега соседние листья с одинаковыми marks
	// сливаются при нормализации.
	doc := parseString(t, "<p><span>a</span><span>b</span></p>")

	children := doc.Blocks[0].Children
	if len(children) != 1 || children[0].(blocks.Text).Content != "ab" {
		t.Errorf("children = %+v", children)
	}
}
