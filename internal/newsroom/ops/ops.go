// Пакет ops реализует операции мутации над документом редактора.
// Все операции чистые: принимают (Document, Selection, параметры) и
// возвращают новую пару, не трогая вход. Структурное разделение памяти
// не используется - операция работает над глубокой копией. После каждой
// операции дерево нормализовано.
package ops

import (
	"unicode/utf8"

	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/blocks"
)

// ToggleMark переключает mark на листьях выделения. Переключение единообразно
// по выделению, а не по-листово: если mark стоит на всех листьях - снимается
// со всех, иначе ставится на все. Пустое выделение - no-op.
func ToggleMark(doc *blocks.Document, sel blocks.Selection, mark blocks.Mark) (*blocks.Document, blocks.Selection) {
	if sel.IsCollapsed() {
		return doc, sel
	}

	nd := doc.Clone()
	start, end := sel.Ordered()
	sb, sc := pointToChar(nd, start)
	eb, ec := pointToChar(nd, end)

	splitAt(nd, sb, sc)
	splitAt(nd, eb, ec)

	// Пустые листья void-элементов форматирование не несут и в расчёте
	// единообразия не участвуют.
	var slots []leafSlot
	for _, slot := range leavesInRange(nd, sb, sc, eb, ec) {
		if slot.length > 0 {
			slots = append(slots, slot)
		}
	}
	uniform := len(slots) > 0
	for _, slot := range slots {
		if !slot.parent.Children[slot.idx].(blocks.Text).Marks.Has(mark) {
			uniform = false
			break
		}
	}

	for _, slot := range slots {
		t := slot.parent.Children[slot.idx].(blocks.Text)
		if uniform {
			t.Marks = t.Marks.Without(mark)
		} else {
			t.Marks = t.Marks.With(mark)
		}
		slot.parent.Children[slot.idx] = t
	}

	nd.Normalize()
	return nd, restoreSelection(nd, sel, sb, sc, eb, ec)
}

// SetBlockKind меняет тип каждого блока, пересечённого выделением.
// Дети и их marks не затрагиваются; встроенные типы на уровне блока
// не допускаются (no-op).
func SetBlockKind(doc *blocks.Document, sel blocks.Selection, kind blocks.Kind) (*blocks.Document, blocks.Selection) {
	if kind.IsInline() {
		return doc, sel
	}

	nd := doc.Clone()
	start, end := sel.Ordered()
	sb, eb := blockIndex(nd, start), blockIndex(nd, end)
	for bi := sb; bi <= eb && bi < len(nd.Blocks); bi++ {
		nd.Blocks[bi].Kind = kind
	}
	return nd, sel.Clone()
}

// InsertLink вставляет в позицию фокуса встроенную ссылку с одним текстовым
// ребенком. Пустой url или displayText - тихий no-op (зеркалит guard-условия
// вызывающего тулбара). external выбирает тип ноды, см. LinkKind.
func InsertLink(doc *blocks.Document, sel blocks.Selection, url, displayText string, external bool) (*blocks.Document, blocks.Selection) {
	if url == "" || displayText == "" {
		return doc, sel
	}

	kind := blocks.InternalLink
	if external {
		kind = blocks.ExternalLink
	}

	el := &blocks.Element{
		Kind:     kind,
		URL:      url,
		Children: []blocks.Node{blocks.Text{Content: displayText}},
	}
	return insertInline(doc, sel, el)
}

// InsertImage вставляет встроенное изображение. Операция присутствует в
// модели, но выключена на границе UI (незавершённая функциональность
// редактора) - см. Session.InsertImage.
func InsertImage(doc *blocks.Document, sel blocks.Selection, src, alt string, width, height int) (*blocks.Document, blocks.Selection) {
	if src == "" {
		return doc, sel
	}

	el := &blocks.Element{
		Kind: blocks.Image,
		Image: &blocks.ImageAttrs{
			Src:    src,
			Alt:    alt,
			Width:  width,
			Height: height,
		},
		Children: []blocks.Node{blocks.Text{}},
	}
	return insertInline(doc, sel, el)
}

// InsertTag вставляет тег-ноду с денормализованным снимком автора.
// Незаполненные поля (нулевой ID) допустимы на момент вставки.
func InsertTag(doc *blocks.Document, sel blocks.Selection, author blocks.Author) (*blocks.Document, blocks.Selection) {
	el := &blocks.Element{
		Kind:     author.Kind.TagKind(),
		Author:   &author,
		Children: []blocks.Node{blocks.Text{}},
	}
	return insertInline(doc, sel, el)
}

// InsertLineBreak вставляет перенос строки в позицию фокуса.
func InsertLineBreak(doc *blocks.Document, sel blocks.Selection) (*blocks.Document, blocks.Selection) {
	el := &blocks.Element{
		Kind:     blocks.LineBreak,
		Children: []blocks.Node{blocks.Text{}},
	}
	return insertInline(doc, sel, el)
}

// InsertParagraphAfter вставляет пустой параграф сразу после блока с фокусом
// и переносит в него выделение. Правило едино для всех типов блоков.
func InsertParagraphAfter(doc *blocks.Document, sel blocks.Selection) (*blocks.Document, blocks.Selection) {
	nd := doc.Clone()
	bi := blockIndex(nd, sel.Focus)

	p := &blocks.Element{
		Kind:     blocks.Paragraph,
		Children: []blocks.Node{blocks.Text{}},
	}

	nd.Blocks = append(nd.Blocks, nil)
	copy(nd.Blocks[bi+2:], nd.Blocks[bi+1:])
	nd.Blocks[bi+1] = p

	nd.Normalize()
	return nd, blocks.Collapsed(blocks.Path{bi + 1, 0}, 0)
}

// InsertText вставляет набранный текст в позицию курсора, наследуя marks
// листа. Диапазонные выделения и void-элементы - no-op: удаление диапазона
// делает принимающая сторона.
func InsertText(doc *blocks.Document, sel blocks.Selection, s string) (*blocks.Document, blocks.Selection) {
	if s == "" || !sel.IsCollapsed() {
		return doc, sel
	}

	nd := doc.Clone()
	bi, c := pointToChar(nd, sel.Focus)
	slot, ok := slotAt(nd, bi, c)
	if !ok || slot.parent.Kind.IsVoid() {
		return doc, sel
	}

	t := slot.parent.Children[slot.idx].(blocks.Text)
	runes := []rune(t.Content)
	cut := c - slot.start
	if cut < 0 {
		cut = 0
	}
	if cut > len(runes) {
		cut = len(runes)
	}
	t.Content = string(runes[:cut]) + s + string(runes[cut:])
	slot.parent.Children[slot.idx] = t

	nd.Normalize()
	return nd, blocks.Selection{
		Anchor: charToPoint(nd, bi, c+utf8.RuneCountInString(s), false),
		Focus:  charToPoint(nd, bi, c+utf8.RuneCountInString(s), false),
	}
}

// ActiveMarks - пересечение наборов marks всех листьев, целиком лежащих в
// выделении. Mark активен только при единообразном присутствии: частичное
// применение показывается как неактивное, в согласии с семантикой ToggleMark.
// Для пустого выделения берутся marks листа под курсором.
func ActiveMarks(doc *blocks.Document, sel blocks.Selection) blocks.Marks {
	if sel.IsCollapsed() {
		if t, ok := doc.TextAt(sel.Focus.Path); ok {
			return t.Marks
		}
		return blocks.Marks{}
	}

	start, end := sel.Ordered()
	sb, sc := pointToChar(doc, start)
	eb, ec := pointToChar(doc, end)

	// Границы могут резать листья; для чтения достаточно учитывать
	// частично накрытые листья наравне с целыми.
	active := blocks.Marks{}
	first := true
	for bi := sb; bi <= eb && bi < len(doc.Blocks); bi++ {
		for _, slot := range blockLeaves(doc, bi) {
			if bi == sb && slot.start+slot.length <= sc {
				continue
			}
			if bi == eb && slot.start >= ec {
				continue
			}
			if slot.length == 0 {
				continue
			}
			t := slot.parent.Children[slot.idx].(blocks.Text)
			if first {
				active = t.Marks
				first = false
			} else {
				active = active.Intersect(t.Marks)
			}
		}
	}
	return active
}

// insertInline вставляет встроенный элемент в блок фокуса, расщепляя лист
// под курсором. Фокус внутри другого встроенного элемента поднимает точку
// вставки на уровень блока (вложенные ссылки не допускаются).
func insertInline(doc *blocks.Document, sel blocks.Selection, el *blocks.Element) (*blocks.Document, blocks.Selection) {
	nd := doc.Clone()
	bi, c := pointToChar(nd, sel.Focus)
	if bi < 0 || bi >= len(nd.Blocks) {
		return doc, sel
	}
	block := nd.Blocks[bi]

	splitAt(nd, bi, c)

	// После расщепления граница c совпадает с границей листьев.
	parent, idx := block, len(block.Children)
	for _, slot := range blockLeaves(nd, bi) {
		if slot.start >= c {
			parent, idx = slot.parent, slot.idx
			break
		}
	}
	if parent != block {
		// Точка внутри встроенного элемента: вставляем после него в блок.
		for i, child := range block.Children {
			if child == blocks.Node(parent) {
				parent, idx = block, i+1
				break
			}
		}
	}

	children := make([]blocks.Node, 0, len(parent.Children)+1)
	children = append(children, parent.Children[:idx]...)
	children = append(children, el)
	children = append(children, parent.Children[idx:]...)
	parent.Children = children

	nd.Normalize()

	path, ok := nd.FindPath(el)
	if !ok {
		return nd, sel.Clone()
	}
	leafPath := append(path.Clone(), 0)
	if t, ok := nd.TextAt(leafPath); ok && t.Content != "" {
		return nd, blocks.Selection{
			Anchor: blocks.Point{Path: leafPath, Offset: 0},
			Focus:  blocks.Point{Path: leafPath.Clone(), Offset: utf8.RuneCountInString(t.Content)},
		}
	}
	return nd, blocks.Collapsed(leafPath, 0)
}

func blockIndex(d *blocks.Document, p blocks.Point) int {
	if len(p.Path) == 0 || p.Path[0] < 0 {
		return 0
	}
	if p.Path[0] >= len(d.Blocks) {
		return len(d.Blocks) - 1
	}
	return p.Path[0]
}

// restoreSelection восстанавливает диапазон по координатам в рунах,
// сохраняя направление anchor/focus.
func restoreSelection(d *blocks.Document, orig blocks.Selection, sb, sc, eb, ec int) blocks.Selection {
	start := charToPoint(d, sb, sc, true)
	end := charToPoint(d, eb, ec, false)
	if orig.Focus.Before(orig.Anchor) {
		return blocks.Selection{Anchor: end, Focus: start}
	}
	return blocks.Selection{Anchor: start, Focus: end}
}
