package slate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/blocks"
)

// ErrMalformedDocument возвращается, когда вход - не JSON-массив валидных блоков.
var ErrMalformedDocument = errors.New("malformed document")

// Parse парсит JSON тела новости в blocks.Document.
// Вход обязан быть массивом блок-нод; иначе ErrMalformedDocument.
func Parse(r io.Reader) (*blocks.Document, error) {
	var nodes []slateNode
	if err := json.NewDecoder(r).Decode(&nodes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	doc := &blocks.Document{Blocks: make([]*blocks.Element, 0, len(nodes))}
	for i, node := range nodes {
		el, err := parseElement(node)
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %v", ErrMalformedDocument, i, err)
		}
		doc.Blocks = append(doc.Blocks, el)
	}

	doc.Normalize()
	return doc, nil
}

// ParseString парсит тело новости из строки.
func ParseString(body string) (*blocks.Document, error) {
	return Parse(strings.NewReader(body))
}

// ParseOrDefault возвращает документ из сохранённого тела либо каноничный
// пустой документ. Пустой вход и "[]" - документированное пустое состояние,
// а не потеря данных; битый JSON тоже не фатален (worst case для этой
// подсистемы - откат к заглушке, см. таксономию ошибок).
func ParseOrDefault(body string) *blocks.Document {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" || trimmed == "[]" {
		return blocks.DefaultDocument()
	}

	doc, err := ParseString(trimmed)
	if err != nil {
		slog.Warn("Malformed news body, falling back to default document", "err", err)
		return blocks.DefaultDocument()
	}
	if len(doc.Blocks) == 0 {
		return blocks.DefaultDocument()
	}
	return doc
}

// parseElement парсит элемент-ноду. Текстовый лист на месте элемента - ошибка.
func parseElement(node slateNode) (*blocks.Element, error) {
	if node.Text != nil {
		return nil, errors.New("text leaf where element expected")
	}

	kind, ok := blocks.KindFromString(node.Type)
	if !ok {
		return nil, fmt.Errorf("unknown node type %q", node.Type)
	}

	el := &blocks.Element{Kind: kind}

	switch kind {
	case blocks.InternalLink, blocks.ExternalLink:
		el.URL = node.URL
	case blocks.Image:
		el.Image = &blocks.ImageAttrs{
			Src:    node.Src,
			Alt:    node.Alt,
			Width:  node.Width,
			Height: node.Height,
		}
	case blocks.StudentTag, blocks.CommitteeTag, blocks.CommitteePositionTag:
		el.Author = parseAuthor(node.Author, kind)
	}

	for _, child := range node.Children {
		n, err := parseChild(child)
		if err != nil {
			return nil, err
		}
		if n != nil {
			el.Children = append(el.Children, n)
		}
	}

	return el, nil
}

// parseChild парсит ребенка элемента: текстовый лист или вложенный элемент.
func parseChild(node slateNode) (blocks.Node, error) {
	if node.Text != nil {
		return blocks.Text{
			Content: *node.Text,
			Marks: blocks.Marks{
				Bold:          node.Bold,
				Italic:        node.Italic,
				Underline:     node.Underline,
				Strikethrough: node.Strikethrough,
			},
		}, nil
	}
	return parseElement(node)
}

// parseAuthor восстанавливает снимок автора тег-ноды. Отсутствующий payload
// допустим: поля разрешаются против справочника вне этой подсистемы.
func parseAuthor(a *slateAuthor, tagKind blocks.Kind) *blocks.Author {
	author := &blocks.Author{}
	switch tagKind {
	case blocks.CommitteeTag:
		author.Kind = blocks.AuthorCommittee
	case blocks.CommitteePositionTag:
		author.Kind = blocks.AuthorCommitteePosition
	default:
		author.Kind = blocks.AuthorStudent
	}

	if a == nil {
		return author
	}

	if kind, ok := blocks.AuthorKindFromString(a.Type); ok {
		author.Kind = kind
	} else if a.Type != "" {
		slog.Warn("Unknown author type", "type", a.Type)
	}

	if a.ID != "" {
		id, err := uuid.FromString(a.ID)
		if err != nil {
			slog.Warn("Invalid author id in tag node", "id", a.ID, "err", err)
		} else {
			author.ID = id
		}
	}
	author.Email = a.Email
	author.Name = a.Name

	return author
}
