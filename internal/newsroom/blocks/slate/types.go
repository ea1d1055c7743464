// Пакет slate предоставляет инструменты для парсинга JSON-контента редактора тела новости.
// Преобразует JSON-массив блоков в структуры данных пакета blocks и обратно.
package slate

// slateNode - универсальная wire-структура узла. Текстовый лист имеет
// ненулевой Text, элементы - Type и Children. Marks текстового листа
// развёрнуты в плоские булевы поля, как их хранит редактор.
type slateNode struct {
	Type     string      `json:"type,omitempty"`
	Children []slateNode `json:"children,omitempty"`

	Text          *string `json:"text,omitempty"`
	Bold          bool    `json:"bold,omitempty"`
	Italic        bool    `json:"italic,omitempty"`
	Underline     bool    `json:"underline,omitempty"`
	Strikethrough bool    `json:"strikethrough,omitempty"`

	URL string `json:"url,omitempty"`

	Src    string `json:"src,omitempty"`
	Alt    string `json:"alt,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`

	Author *slateAuthor `json:"author,omitempty"`
}

// slateAuthor - денормализованный снимок автора внутри тег-ноды.
type slateAuthor struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}
