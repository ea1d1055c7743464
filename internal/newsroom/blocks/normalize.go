package blocks

// Normalize возвращает нормализованную копию документа:
//   - соседние текстовые листья с одинаковыми marks слиты;
//   - пустые листья удалены, если они не единственный ребенок;
//   - каждый элемент содержит минимум один лист (пустой Text при необходимости);
//   - void-элементы сведены к каноничному единственному пустому листу.
//
// Идемпотентна: Normalize(Normalize(d)) эквивалентна Normalize(d).
func Normalize(d *Document) *Document {
	clone := d.Clone()
	clone.Normalize()
	return clone
}

// Normalize нормализует документ на месте. Указатели на элементы
// сохраняются, перестраиваются только слайсы детей.
func (d *Document) Normalize() {
	for _, b := range d.Blocks {
		normalizeElement(b)
	}
	if len(d.Blocks) == 0 {
		d.Blocks = DefaultDocument().Blocks
	}
}

func normalizeElement(e *Element) {
	if e.Kind.IsVoid() {
		e.Children = []Node{Text{}}
		return
	}

	for _, child := range e.Children {
		if el, ok := child.(*Element); ok {
			normalizeElement(el)
		}
	}

	merged := make([]Node, 0, len(e.Children))
	for _, child := range e.Children {
		t, isText := child.(Text)
		if isText && t.Content == "" {
			continue
		}
		if isText && len(merged) > 0 {
			if prev, ok := merged[len(merged)-1].(Text); ok && prev.Marks == t.Marks {
				prev.Content += t.Content
				merged[len(merged)-1] = prev
				continue
			}
		}
		merged = append(merged, child)
	}

	if len(merged) == 0 {
		merged = append(merged, Text{})
	}
	e.Children = merged
}
