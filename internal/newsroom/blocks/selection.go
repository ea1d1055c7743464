package blocks

// Path - путь узла в дереве: индекс блока, затем индексы детей.
type Path []int

func (p Path) Clone() Path {
	return append(Path{}, p...)
}

func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Compare - лексикографическое сравнение путей в порядке обхода документа.
// Возвращает -1, 0 или 1.
func (p Path) Compare(other Path) int {
	for i := 0; i < len(p) && i < len(other); i++ {
		if p[i] < other[i] {
			return -1
		}
		if p[i] > other[i] {
			return 1
		}
	}
	switch {
	case len(p) < len(other):
		return -1
	case len(p) > len(other):
		return 1
	}
	return 0
}

// Point - позиция в документе: путь до текстового листа и смещение в рунах.
type Point struct {
	Path   Path
	Offset int
}

func (p Point) Clone() Point {
	return Point{Path: p.Path.Clone(), Offset: p.Offset}
}

func (p Point) Equal(other Point) bool {
	return p.Offset == other.Offset && p.Path.Equal(other.Path)
}

// Before сообщает, что точка строго раньше другой в порядке обхода.
func (p Point) Before(other Point) bool {
	switch p.Path.Compare(other.Path) {
	case -1:
		return true
	case 1:
		return false
	}
	return p.Offset < other.Offset
}

// Selection - транзиентный диапазон над документом. Принадлежит сессии
// редактора и никогда не сериализуется.
type Selection struct {
	Anchor Point
	Focus  Point
}

// Collapsed возвращает выделение-курсор в одной точке.
func Collapsed(path Path, offset int) Selection {
	p := Point{Path: path, Offset: offset}
	return Selection{Anchor: p, Focus: p.Clone()}
}

func (s Selection) IsCollapsed() bool {
	return s.Anchor.Equal(s.Focus)
}

// Ordered возвращает точки выделения в порядке обхода документа
// (anchor и focus могут идти в любом направлении).
func (s Selection) Ordered() (start, end Point) {
	if s.Focus.Before(s.Anchor) {
		return s.Focus, s.Anchor
	}
	return s.Anchor, s.Focus
}

func (s Selection) Clone() Selection {
	return Selection{Anchor: s.Anchor.Clone(), Focus: s.Focus.Clone()}
}
