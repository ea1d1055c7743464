package blocks

import (
	"strings"

	"github.com/gofrs/uuid"
)

// DefaultHeadingText - текст-заглушка заголовка пустого документа.
const DefaultHeadingText = "Untitled"

// Node - узел дерева документа: текстовый лист (Text) или элемент (*Element).
// Интерфейс закрыт маркерным методом, сторонние реализации невозможны.
type Node interface {
	node()
}

// Text - текстовый лист с набором marks.
type Text struct {
	Content string
	Marks   Marks
}

func (Text) node() {}

// ImageAttrs - payload встроенного изображения.
type ImageAttrs struct {
	Src    string
	Alt    string
	Width  int
	Height int
}

// AuthorKind - вариант автора для тег-элементов.
type AuthorKind int

const (
	AuthorStudent AuthorKind = iota
	AuthorCommittee
	AuthorCommitteePosition
)

var authorKindNames = map[AuthorKind]string{
	AuthorStudent:           "student",
	AuthorCommittee:         "committee",
	AuthorCommitteePosition: "committee_position",
}

func (k AuthorKind) String() string {
	return authorKindNames[k]
}

// AuthorKindFromString возвращает AuthorKind по строковому дискриминатору.
func AuthorKindFromString(name string) (AuthorKind, bool) {
	for k, n := range authorKindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// TagKind возвращает Kind тег-элемента для данного варианта автора.
func (k AuthorKind) TagKind() Kind {
	switch k {
	case AuthorStudent:
		return StudentTag
	case AuthorCommittee:
		return CommitteeTag
	case AuthorCommitteePosition:
		return CommitteePositionTag
	}
	return StudentTag
}

// Author - денормализованный снимок автора, встраиваемый в тег-элемент.
// Тег хранит копию полей, а не живую ссылку: он рендерится корректно,
// даже если запись в справочнике позже изменится. Незаполненный ID
// допустим при вставке, разрешение против справочника - забота вызывающего.
type Author struct {
	Kind  AuthorKind
	ID    uuid.UUID
	Email string
	Name  string
}

// Element - блок или встроенный элемент с типом из закрытого набора.
// Инвариант: Children никогда не пуст (нормализация вставляет пустой Text).
type Element struct {
	Kind     Kind
	Children []Node

	// Payload по типу элемента; не более одного поля заполнено.
	URL    string      // internal-link, external-link
	Image  *ImageAttrs // image
	Author *Author     // student-tag, committee-tag, committee-position-tag
}

func (*Element) node() {}

// Document - упорядоченная последовательность блоков, тело одной новости/страницы.
type Document struct {
	Blocks []*Element
}

// DefaultDocument - каноничное пустое состояние: один заголовок первого
// уровня с текстом-заглушкой. Возвращается вместо ошибки на пустом входе.
func DefaultDocument() *Document {
	return &Document{Blocks: []*Element{{
		Kind:     Heading1,
		Children: []Node{Text{Content: DefaultHeadingText}},
	}}}
}

// Clone возвращает глубокую копию документа. Операции мутации работают
// только над копией, исходное дерево не меняется.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	clone := &Document{Blocks: make([]*Element, len(d.Blocks))}
	for i, b := range d.Blocks {
		clone.Blocks[i] = b.clone()
	}
	return clone
}

func (e *Element) clone() *Element {
	c := &Element{
		Kind:     e.Kind,
		Children: make([]Node, len(e.Children)),
		URL:      e.URL,
	}
	if e.Image != nil {
		img := *e.Image
		c.Image = &img
	}
	if e.Author != nil {
		a := *e.Author
		c.Author = &a
	}
	for i, child := range e.Children {
		switch n := child.(type) {
		case Text:
			c.Children[i] = n
		case *Element:
			c.Children[i] = n.clone()
		}
	}
	return c
}

// PlainText - конкатенация всех текстовых листьев элемента.
func (e *Element) PlainText() string {
	var sb strings.Builder
	var walk func(n Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case Text:
			sb.WriteString(v.Content)
		case *Element:
			for _, child := range v.Children {
				walk(child)
			}
		}
	}
	for _, child := range e.Children {
		walk(child)
	}
	return sb.String()
}

// HasEmbed сообщает, содержит ли блок встроенный элемент.
func (e *Element) HasEmbed() bool {
	for _, child := range e.Children {
		if _, ok := child.(*Element); ok {
			return true
		}
	}
	return false
}

// IsEmptyBlock - блок считается пустым, если его текст после trim пуст и
// внутри нет встроенных элементов. Используется UI для заглушек, не
// логикой сохранения.
func IsEmptyBlock(e *Element) bool {
	return strings.TrimSpace(e.PlainText()) == "" && !e.HasEmbed()
}

// NodeAt возвращает узел по пути или nil, если путь не ведет в дерево.
func (d *Document) NodeAt(p Path) Node {
	if len(p) == 0 || p[0] < 0 || p[0] >= len(d.Blocks) {
		return nil
	}
	var cur Node = d.Blocks[p[0]]
	for _, idx := range p[1:] {
		el, ok := cur.(*Element)
		if !ok || idx < 0 || idx >= len(el.Children) {
			return nil
		}
		cur = el.Children[idx]
	}
	return cur
}

// TextAt возвращает текстовый лист по пути.
func (d *Document) TextAt(p Path) (Text, bool) {
	t, ok := d.NodeAt(p).(Text)
	return t, ok
}

// ParentOf возвращает элемент-родитель узла по пути.
func (d *Document) ParentOf(p Path) *Element {
	if len(p) < 2 {
		return nil
	}
	parent, _ := d.NodeAt(p[:len(p)-1]).(*Element)
	return parent
}

// BlockOf возвращает блок верхнего уровня, содержащий путь.
func (d *Document) BlockOf(p Path) *Element {
	if len(p) == 0 || p[0] < 0 || p[0] >= len(d.Blocks) {
		return nil
	}
	return d.Blocks[p[0]]
}

// FindPath ищет путь элемента по идентичности указателя.
// Нужен операциям вставки: нормализация перестраивает слайсы детей,
// но сами элементы сохраняет.
func (d *Document) FindPath(target *Element) (Path, bool) {
	for bi, b := range d.Blocks {
		if b == target {
			return Path{bi}, true
		}
		if p, ok := findPathIn(b, Path{bi}, target); ok {
			return p, true
		}
	}
	return nil, false
}

func findPathIn(e *Element, base Path, target *Element) (Path, bool) {
	for i, child := range e.Children {
		el, ok := child.(*Element)
		if !ok {
			continue
		}
		p := append(append(Path{}, base...), i)
		if el == target {
			return p, true
		}
		if found, ok := findPathIn(el, p, target); ok {
			return found, true
		}
	}
	return nil, false
}
