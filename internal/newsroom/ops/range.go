package ops

import (
	"unicode/utf8"

	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/blocks"
)

// leafSlot - текстовый лист блока в порядке обхода: родитель и индекс для
// мутации, start - смещение первого символа листа от начала блока в рунах.
type leafSlot struct {
	parent *blocks.Element
	idx    int
	path   blocks.Path
	start  int
	length int
}

// blockLeaves собирает листья блока bi в порядке обхода.
func blockLeaves(d *blocks.Document, bi int) []leafSlot {
	if bi < 0 || bi >= len(d.Blocks) {
		return nil
	}
	var slots []leafSlot
	cum := 0

	var walk func(e *blocks.Element, base blocks.Path)
	walk = func(e *blocks.Element, base blocks.Path) {
		for i, child := range e.Children {
			p := append(append(blocks.Path{}, base...), i)
			switch n := child.(type) {
			case blocks.Text:
				l := utf8.RuneCountInString(n.Content)
				slots = append(slots, leafSlot{
					parent: e,
					idx:    i,
					path:   p,
					start:  cum,
					length: l,
				})
				cum += l
			case *blocks.Element:
				walk(n, p)
			}
		}
	}

	walk(d.Blocks[bi], blocks.Path{bi})
	return slots
}

// pointToChar переводит точку в координату (блок, смещение в рунах от начала
// блока). Координата устойчива к расщеплению и слиянию листьев, поэтому
// операции восстанавливают выделение через неё после нормализации.
func pointToChar(d *blocks.Document, p blocks.Point) (block, chars int) {
	if len(p.Path) == 0 {
		return 0, 0
	}
	block = p.Path[0]
	for _, slot := range blockLeaves(d, block) {
		if slot.path.Equal(p.Path) {
			off := p.Offset
			if off > slot.length {
				off = slot.length
			}
			return block, slot.start + off
		}
	}
	return block, 0
}

// charToPoint переводит координату обратно в точку. На границе листьев
// leanForward выбирает начало следующего листа (для начала диапазона),
// иначе - конец текущего (для конца диапазона).
func charToPoint(d *blocks.Document, block, chars int, leanForward bool) blocks.Point {
	slots := blockLeaves(d, block)
	if len(slots) == 0 {
		return blocks.Point{Path: blocks.Path{block}, Offset: 0}
	}
	for i, slot := range slots {
		end := slot.start + slot.length
		if chars < end || (chars == end && (!leanForward || i == len(slots)-1)) {
			off := chars - slot.start
			if off < 0 {
				off = 0
			}
			return blocks.Point{Path: slot.path, Offset: off}
		}
	}
	last := slots[len(slots)-1]
	return blocks.Point{Path: last.path, Offset: last.length}
}

// slotAt возвращает лист, содержащий координату chars блока block.
func slotAt(d *blocks.Document, block, chars int) (leafSlot, bool) {
	slots := blockLeaves(d, block)
	for i, slot := range slots {
		if chars < slot.start+slot.length || i == len(slots)-1 {
			return slot, true
		}
	}
	return leafSlot{}, false
}

// splitAt расщепляет лист на границе координаты chars, если она попадает
// внутрь листа. После вызова граница совпадает с границей листьев.
func splitAt(d *blocks.Document, block, chars int) {
	for _, slot := range blockLeaves(d, block) {
		if chars <= slot.start || chars >= slot.start+slot.length {
			continue
		}
		t := slot.parent.Children[slot.idx].(blocks.Text)
		runes := []rune(t.Content)
		cut := chars - slot.start

		left := blocks.Text{Content: string(runes[:cut]), Marks: t.Marks}
		right := blocks.Text{Content: string(runes[cut:]), Marks: t.Marks}

		children := make([]blocks.Node, 0, len(slot.parent.Children)+1)
		children = append(children, slot.parent.Children[:slot.idx]...)
		children = append(children, left, right)
		children = append(children, slot.parent.Children[slot.idx+1:]...)
		slot.parent.Children = children
		return
	}
}

// leavesInRange собирает листья, целиком лежащие внутри диапазона
// [(sb,sc); (eb,ec)]. Границы обязаны совпадать с границами листьев
// (после splitAt).
func leavesInRange(d *blocks.Document, sb, sc, eb, ec int) []leafSlot {
	var res []leafSlot
	for bi := sb; bi <= eb && bi < len(d.Blocks); bi++ {
		for _, slot := range blockLeaves(d, bi) {
			if bi == sb && slot.start < sc {
				continue
			}
			if bi == eb && slot.start+slot.length > ec {
				continue
			}
			res = append(res, slot)
		}
	}
	return res
}
