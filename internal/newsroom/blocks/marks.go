package blocks

// Mark - булев атрибут форматирования текстового листа.
type Mark int

const (
	MarkBold Mark = iota
	MarkItalic
	MarkUnderline
	MarkStrikethrough
)

var markNames = map[Mark]string{
	MarkBold:          "bold",
	MarkItalic:        "italic",
	MarkUnderline:     "underline",
	MarkStrikethrough: "strikethrough",
}

func (m Mark) String() string {
	return markNames[m]
}

// AllMarks перечисляет marks в стабильном порядке (для интерсекции в сессии).
var AllMarks = []Mark{MarkBold, MarkItalic, MarkUnderline, MarkStrikethrough}

// Marks - набор атрибутов форматирования. Marks ортогональны и комбинируются
// свободно; сравнение через == служит ключом слияния при нормализации.
type Marks struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
}

func (ms Marks) Has(m Mark) bool {
	switch m {
	case MarkBold:
		return ms.Bold
	case MarkItalic:
		return ms.Italic
	case MarkUnderline:
		return ms.Underline
	case MarkStrikethrough:
		return ms.Strikethrough
	}
	return false
}

// With возвращает копию набора с установленным mark.
func (ms Marks) With(m Mark) Marks {
	switch m {
	case MarkBold:
		ms.Bold = true
	case MarkItalic:
		ms.Italic = true
	case MarkUnderline:
		ms.Underline = true
	case MarkStrikethrough:
		ms.Strikethrough = true
	}
	return ms
}

// Without возвращает копию набора со снятым mark.
func (ms Marks) Without(m Mark) Marks {
	switch m {
	case MarkBold:
		ms.Bold = false
	case MarkItalic:
		ms.Italic = false
	case MarkUnderline:
		ms.Underline = false
	case MarkStrikethrough:
		ms.Strikethrough = false
	}
	return ms
}

// Intersect оставляет только marks, присутствующие в обоих наборах.
func (ms Marks) Intersect(other Marks) Marks {
	return Marks{
		Bold:          ms.Bold && other.Bold,
		Italic:        ms.Italic && other.Italic,
		Underline:     ms.Underline && other.Underline,
		Strikethrough: ms.Strikethrough && other.Strikethrough,
	}
}

func (ms Marks) None() bool {
	return ms == Marks{}
}
