package slate

import (
	"encoding/json"
	"log/slog"

	"github.com/gofrs/uuid"
	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/blocks"
)

// Serialize сериализует документ в JSON-массив блок-нод - каноничную
// сохраняемую форму поля body. Для любого документа, построенного
// операциями мутации, выполняется закон Parse(Serialize(d)) == d.
func Serialize(doc *blocks.Document) ([]byte, error) {
	nodes := make([]slateNode, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		nodes = append(nodes, serializeElement(b))
	}
	return json.Marshal(nodes)
}

// SerializeString - Serialize в строку для поля body сущности.
func SerializeString(doc *blocks.Document) (string, error) {
	b, err := Serialize(doc)
	return string(b), err
}

func serializeElement(e *blocks.Element) slateNode {
	node := slateNode{
		Type:     e.Kind.String(),
		Children: make([]slateNode, 0, len(e.Children)),
	}

	switch e.Kind {
	case blocks.InternalLink, blocks.ExternalLink:
		node.URL = e.URL
	case blocks.Image:
		if e.Image != nil {
			node.Src = e.Image.Src
			node.Alt = e.Image.Alt
			node.Width = e.Image.Width
			node.Height = e.Image.Height
		}
	case blocks.StudentTag, blocks.CommitteeTag, blocks.CommitteePositionTag:
		node.Author = serializeAuthor(e.Author)
	case blocks.Heading1, blocks.Heading2, blocks.Heading3, blocks.Heading4,
		blocks.Paragraph, blocks.LineBreak, blocks.Quote,
		blocks.MultiLineCode, blocks.InlineCode:
		// без payload
	default:
		slog.Warn("Unknown element kind for serialization", "kind", e.Kind)
	}

	for _, child := range e.Children {
		node.Children = append(node.Children, serializeChild(child))
	}

	return node
}

func serializeChild(n blocks.Node) slateNode {
	switch v := n.(type) {
	case blocks.Text:
		text := v.Content
		return slateNode{
			Text:          &text,
			Bold:          v.Marks.Bold,
			Italic:        v.Marks.Italic,
			Underline:     v.Marks.Underline,
			Strikethrough: v.Marks.Strikethrough,
		}
	case *blocks.Element:
		return serializeElement(v)
	}
	// Node закрыт маркерным методом, сюда не попадаем
	slog.Warn("Unknown node type for serialization", "node", n)
	return slateNode{}
}

func serializeAuthor(a *blocks.Author) *slateAuthor {
	if a == nil {
		return nil
	}
	sa := &slateAuthor{
		Type:  a.Kind.String(),
		Email: a.Email,
		Name:  a.Name,
	}
	if a.ID != uuid.Nil {
		sa.ID = a.ID.String()
	}
	return sa
}
