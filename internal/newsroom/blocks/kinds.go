// Пакет blocks определяет модель документа rich-text редактора новостей:
// закрытый набор типов блоков, текстовые листья с форматированием (marks),
// встроенные элементы (ссылки, изображения, теги авторов) и выделение.
//
// Основные возможности:
//   - Закрытое перечисление типов блоков (Kind) с преобразованием в строку и обратно.
//   - Текстовые листья с ортогональными булевыми marks (bold, italic, underline, strikethrough).
//   - Встроенные элементы с денормализованными payload (URL, изображение, автор).
//   - Нормализация дерева: слияние соседних листьев с одинаковыми marks,
//     гарантия минимум одного листа в каждом элементе.
//   - Выделение (Selection) как пара точек path+offset, никогда не сериализуется.
package blocks

import "fmt"

// Kind - дискриминатор типа блока или встроенного элемента.
// Набор закрыт: добавление нового типа требует правки всех switch по Kind
// (кодек, операции, импортёр).
type Kind int

const (
	Heading1 Kind = iota
	Heading2
	Heading3
	Heading4
	Paragraph
	LineBreak
	Quote
	MultiLineCode
	InlineCode
	InternalLink
	ExternalLink
	Image
	StudentTag
	CommitteeTag
	CommitteePositionTag
)

var kindNames = map[Kind]string{
	Heading1:             "heading-1",
	Heading2:             "heading-2",
	Heading3:             "heading-3",
	Heading4:             "heading-4",
	Paragraph:            "paragraph",
	LineBreak:            "line-break",
	Quote:                "quote",
	MultiLineCode:        "multi-line-code",
	InlineCode:           "inline-code",
	InternalLink:         "internal-link",
	ExternalLink:         "external-link",
	Image:                "image",
	StudentTag:           "student-tag",
	CommitteeTag:         "committee-tag",
	CommitteePositionTag: "committee-position-tag",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// KindFromString возвращает Kind по его строковому дискриминатору из JSON.
func KindFromString(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// IsInline сообщает, что элемент живет внутри блока, а не на верхнем уровне.
func (k Kind) IsInline() bool {
	switch k {
	case InternalLink, ExternalLink, Image, LineBreak,
		StudentTag, CommitteeTag, CommitteePositionTag:
		return true
	}
	return false
}

// IsVoid сообщает, что элемент не содержит редактируемого текста.
// Такие элементы хранят единственный пустой текстовый лист, чтобы
// алгоритмам дерева всегда было куда поставить курсор.
func (k Kind) IsVoid() bool {
	switch k {
	case Image, LineBreak, StudentTag, CommitteeTag, CommitteePositionTag:
		return true
	}
	return false
}

// IsHeading для UI тулбара.
func (k Kind) IsHeading() bool {
	return k == Heading1 || k == Heading2 || k == Heading3 || k == Heading4
}
