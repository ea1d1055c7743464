package ops

import (
	"reflect"
	"testing"

	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/blocks"
)

func paragraph(children ...blocks.Node) *blocks.Element {
	return &blocks.Element{Kind: blocks.Paragraph, Children: children}
}

func TestToggleMarkUniform(t *testing.T) {
	// Выделение накрывает размеченный и неразмеченный листья: первый
	// переключатель ставит mark на оба, второй снимает с обоих.
	doc := &blocks.Document{Blocks: []*blocks.Element{paragraph(
		blocks.Text{Content: "AB", Marks: blocks.Marks{Bold: true}},
		blocks.Text{Content: "CD"},
	)}}
	sel := blocks.Selection{
		Anchor: blocks.Point{Path: blocks.Path{0, 0}, Offset: 0},
		Focus:  blocks.Point{Path: blocks.Path{0, 1}, Offset: 2},
	}

	doc1, sel1 := ToggleMark(doc, sel, blocks.MarkBold)

	want := []blocks.Node{blocks.Text{Content: "ABCD", Marks: blocks.Marks{Bold: true}}}
	if !reflect.DeepEqual(doc1.Blocks[0].Children, want) {
		t.Fatalf("after first toggle: %+v, want %+v", doc1.Blocks[0].Children, want)
	}

	doc2, _ := ToggleMark(doc1, sel1, blocks.MarkBold)

	want = []blocks.Node{blocks.Text{Content: "ABCD"}}
	if !reflect.DeepEqual(doc2.Blocks[0].Children, want) {
		t.Fatalf("after second toggle: %+v, want %+v", doc2.Blocks[0].Children, want)
	}
}

func TestToggleMarkSplitsLeaves(t *testing.T) {
	doc := &blocks.Document{Blocks: []*blocks.Element{paragraph(
		blocks.Text{Content: "ABCD"},
	)}}
	sel := blocks.Selection{
		Anchor: blocks.Point{Path: blocks.Path{0, 0}, Offset: 1},
		Focus:  blocks.Point{Path: blocks.Path{0, 0}, Offset: 3},
	}

	got, gotSel := ToggleMark(doc, sel, blocks.MarkBold)

	want := []blocks.Node{
		blocks.Text{Content: "A"},
		blocks.Text{Content: "BC", Marks: blocks.Marks{Bold: true}},
		blocks.Text{Content: "D"},
	}
	if !reflect.DeepEqual(got.Blocks[0].Children, want) {
		t.Fatalf("children = %+v, want %+v", got.Blocks[0].Children, want)
	}

	// Выделение восстановлено ровно над помеченным листом
	start, end := gotSel.Ordered()
	if !start.Path.Equal(blocks.Path{0, 1}) || start.Offset != 0 {
		t.Errorf("start = %+v", start)
	}
	if !end.Path.Equal(blocks.Path{0, 1}) || end.Offset != 2 {
		t.Errorf("end = %+v", end)
	}

	// Вход не изменился
	if len(doc.Blocks[0].Children) != 1 {
		t.Error("input document was mutated")
	}
}

func TestToggleMarkAcrossLineBreak(t *testing.T) {
	// Пустой лист переноса строки не должен ломать расчет единообразия:
	// повторный toggle по диапазону с <br> обязан снять mark.
	doc := &blocks.Document{Blocks: []*blocks.Element{paragraph(
		blocks.Text{Content: "AB", Marks: blocks.Marks{Bold: true}},
		&blocks.Element{Kind: blocks.LineBreak, Children: []blocks.Node{blocks.Text{}}},
		blocks.Text{Content: "CD", Marks: blocks.Marks{Bold: true}},
	)}}
	sel := blocks.Selection{
		Anchor: blocks.Point{Path: blocks.Path{0, 0}, Offset: 0},
		Focus:  blocks.Point{Path: blocks.Path{0, 2}, Offset: 2},
	}

	got, _ := ToggleMark(doc, sel, blocks.MarkBold)

	for _, child := range got.Blocks[0].Children {
		if t2, ok := child.(blocks.Text); ok && t2.Marks.Bold {
			t.Fatalf("bold not removed: %+v", got.Blocks[0].Children)
		}
	}
}

func TestToggleMarkCollapsedNoop(t *testing.T) {
	doc := &blocks.Document{Blocks: []*blocks.Element{paragraph(blocks.Text{Content: "x"})}}
	sel := blocks.Collapsed(blocks.Path{0, 0}, 1)

	got, _ := ToggleMark(doc, sel, blocks.MarkBold)
	if got != doc {
		t.Error("collapsed toggle should be a no-op")
	}
}

func TestSetBlockKindPreservesChildren(t *testing.T) {
	doc := &blocks.Document{Blocks: []*blocks.Element{paragraph(
		blocks.Text{Content: "viktig ", Marks: blocks.Marks{Bold: true}},
		blocks.Text{Content: "nyhet"},
	)}}
	sel := blocks.Collapsed(blocks.Path{0, 0}, 2)

	got, _ := SetBlockKind(doc, sel, blocks.Heading2)

	if got.Blocks[0].Kind != blocks.Heading2 {
		t.Errorf("Kind = %v, want heading-2", got.Blocks[0].Kind)
	}
	if !reflect.DeepEqual(got.Blocks[0].Children, doc.Blocks[0].Children) {
		t.Errorf("children changed: %+v", got.Blocks[0].Children)
	}
}

func TestSetBlockKindSpansSelection(t *testing.T) {
	doc := &blocks.Document{Blocks: []*blocks.Element{
		paragraph(blocks.Text{Content: "a"}),
		paragraph(blocks.Text{Content: "b"}),
		paragraph(blocks.Text{Content: "c"}),
	}}
	sel := blocks.Selection{
		Anchor: blocks.Point{Path: blocks.Path{0, 0}, Offset: 0},
		Focus:  blocks.Point{Path: blocks.Path{1, 0}, Offset: 1},
	}

	got, _ := SetBlockKind(doc, sel, blocks.Quote)

	if got.Blocks[0].Kind != blocks.Quote || got.Blocks[1].Kind != blocks.Quote {
		t.Error("selected blocks not re-kinded")
	}
	if got.Blocks[2].Kind != blocks.Paragraph {
		t.Error("block outside selection re-kinded")
	}
}

func TestSetBlockKindRejectsInline(t *testing.T) {
	doc := &blocks.Document{Blocks: []*blocks.Element{paragraph(blocks.Text{Content: "a"})}}
	got, _ := SetBlockKind(doc, blocks.Collapsed(blocks.Path{0, 0}, 0), blocks.Image)
	if got.Blocks[0].Kind != blocks.Paragraph {
		t.Error("inline kind applied at block level")
	}
}

func TestInsertLink(t *testing.T) {
	doc := &blocks.Document{Blocks: []*blocks.Element{paragraph(
		blocks.Text{Content: "Hello world"},
	)}}
	sel := blocks.Collapsed(blocks.Path{0, 0}, 5)

	got, gotSel := InsertLink(doc, sel, "https://example.com", "länk", true)

	children := got.Blocks[0].Children
	if len(children) != 3 {
		t.Fatalf("children = %+v", children)
	}
	link, ok := children[1].(*blocks.Element)
	if !ok || link.Kind != blocks.ExternalLink {
		t.Fatalf("children[1] = %+v", children[1])
	}
	if link.URL != "https://example.com" || link.PlainText() != "länk" {
		t.Errorf("link = %+v", link)
	}

	// Выделение накрывает текст вставленной ссылки
	start, end := gotSel.Ordered()
	if !start.Path.Equal(blocks.Path{0, 1, 0}) || start.Offset != 0 || end.Offset != 4 {
		t.Errorf("selection = %+v .. %+v", start, end)
	}
}

func TestInsertLinkGuards(t *testing.T) {
	doc := &blocks.Document{Blocks: []*blocks.Element{paragraph(blocks.Text{Content: "x"})}}
	sel := blocks.Collapsed(blocks.Path{0, 0}, 0)

	// Пустой url и пустой текст - тихие no-op, как guard-условия тулбара
	if got, _ := InsertLink(doc, sel, "", "text", false); got != doc {
		t.Error("empty url must be a no-op")
	}
	if got, _ := InsertLink(doc, sel, "https://example.com", "", false); got != doc {
		t.Error("empty display text must be a no-op")
	}
}

func TestInsertTag(t *testing.T) {
	doc := &blocks.Document{Blocks: []*blocks.Element{paragraph(blocks.Text{Content: "av "})}}
	sel := blocks.Collapsed(blocks.Path{0, 0}, 3)

	author := blocks.Author{Kind: blocks.AuthorCommitteePosition, Name: "Ordförande"}
	got, gotSel := InsertTag(doc, sel, author)

	tag, ok := got.Blocks[0].Children[1].(*blocks.Element)
	if !ok || tag.Kind != blocks.CommitteePositionTag {
		t.Fatalf("children[1] = %+v", got.Blocks[0].Children[1])
	}
	if tag.Author == nil || tag.Author.Name != "Ordförande" {
		t.Errorf("author snapshot = %+v", tag.Author)
	}
	if !gotSel.IsCollapsed() || !gotSel.Focus.Path.Equal(blocks.Path{0, 1, 0}) {
		t.Errorf("selection = %+v", gotSel)
	}
}

func TestInsertImage(t *testing.T) {
	doc := &blocks.Document{Blocks: []*blocks.Element{paragraph(blocks.Text{Content: "x"})}}
	sel := blocks.Collapsed(blocks.Path{0, 0}, 1)

	got, _ := InsertImage(doc, sel, "/static/a.png", "alt", 100, 50)

	img, ok := got.Blocks[0].Children[1].(*blocks.Element)
	if !ok || img.Kind != blocks.Image {
		t.Fatalf("children = %+v", got.Blocks[0].Children)
	}
	if img.Image.Src != "/static/a.png" || img.Image.Width != 100 {
		t.Errorf("image attrs = %+v", img.Image)
	}
}

func TestInsertParagraphAfter(t *testing.T) {
	doc := &blocks.Document{Blocks: []*blocks.Element{
		{Kind: blocks.Heading1, Children: []blocks.Node{blocks.Text{Content: "Rubrik"}}},
		paragraph(blocks.Text{Content: "svans"}),
	}}
	sel := blocks.Collapsed(blocks.Path{0, 0}, 6)

	got, gotSel := InsertParagraphAfter(doc, sel)

	if len(got.Blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(got.Blocks))
	}
	if got.Blocks[1].Kind != blocks.Paragraph || !blocks.IsEmptyBlock(got.Blocks[1]) {
		t.Errorf("inserted block = %+v", got.Blocks[1])
	}
	if got.Blocks[2].PlainText() != "svans" {
		t.Errorf("tail block displaced: %+v", got.Blocks[2])
	}
	if !gotSel.IsCollapsed() || !gotSel.Focus.Path.Equal(blocks.Path{1, 0}) {
		t.Errorf("selection = %+v", gotSel)
	}
}

// Правило Enter едино: заголовки, цитаты и код тоже получают параграф после себя.
func TestInsertParagraphAfterTerminalKinds(t *testing.T) {
	for _, kind := range []blocks.Kind{blocks.Heading1, blocks.Quote, blocks.MultiLineCode} {
		t.Run(kind.String(), func(t *testing.T) {
			doc := &blocks.Document{Blocks: []*blocks.Element{
				{Kind: kind, Children: []blocks.Node{blocks.Text{Content: "x"}}},
			}}
			got, _ := InsertParagraphAfter(doc, blocks.Collapsed(blocks.Path{0, 0}, 1))
			if len(got.Blocks) != 2 || got.Blocks[1].Kind != blocks.Paragraph {
				t.Errorf("blocks = %+v", got.Blocks)
			}
		})
	}
}

func TestInsertText(t *testing.T) {
	doc := &blocks.Document{Blocks: []*blocks.Element{paragraph(
		blocks.Text{Content: "ab", Marks: blocks.Marks{Italic: true}},
	)}}
	sel := blocks.Collapsed(blocks.Path{0, 0}, 1)

	got, gotSel := InsertText(doc, sel, "x")

	want := []blocks.Node{blocks.Text{Content: "axb", Marks: blocks.Marks{Italic: true}}}
	if !reflect.DeepEqual(got.Blocks[0].Children, want) {
		t.Errorf("children = %+v, want %+v", got.Blocks[0].Children, want)
	}
	if gotSel.Focus.Offset != 2 {
		t.Errorf("cursor offset = %d, want 2", gotSel.Focus.Offset)
	}
}

func TestActiveMarks(t *testing.T) {
	doc := &blocks.Document{Blocks: []*blocks.Element{paragraph(
		blocks.Text{Content: "AB", Marks: blocks.Marks{Bold: true, Italic: true}},
		blocks.Text{Content: "CD", Marks: blocks.Marks{Bold: true}},
	)}}

	// Диапазон через оба листа: активно только общее
	sel := blocks.Selection{
		Anchor: blocks.Point{Path: blocks.Path{0, 0}, Offset: 0},
		Focus:  blocks.Point{Path: blocks.Path{0, 1}, Offset: 2},
	}
	if got := ActiveMarks(doc, sel); got != (blocks.Marks{Bold: true}) {
		t.Errorf("ActiveMarks = %+v", got)
	}

	// Пустое выделение: marks листа под курсором
	if got := ActiveMarks(doc, blocks.Collapsed(blocks.Path{0, 0}, 1)); !got.Italic {
		t.Errorf("ActiveMarks at cursor = %+v", got)
	}
}
