// Импортёр дореформенных тел новостей: до перехода на структурированный
// редактор тела хранились как HTML. Пакет санитизирует разметку и
// преобразует её в модель blocks для дальнейшего редактирования.
//
// Основные возможности:
//   - Санитизация входа политикой bluemonday UGC перед разбором.
//   - Парсинг HTML-документов из io.Reader.
//   - Преобразование заголовков, параграфов, цитат и блоков кода в блоки.
//   - Извлечение форматирования (strong/em/u/s), ссылок, изображений и <br>.
package legacyhtml

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/blocks"
	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/ops"
)

// Parse преобразует legacy HTML в документ редактора. trustedDomains
// классифицирует найденные ссылки на внутренние и внешние.
func Parse(r io.Reader, trustedDomains []string) (*blocks.Document, error) {
	sanitized := bluemonday.UGCPolicy().SanitizeReader(r)

	rootNode, err := html.Parse(sanitized)
	if err != nil {
		return nil, err
	}

	document := &blocks.Document{}

	for el := getBody(rootNode).FirstChild; el != nil; el = el.NextSibling {
		if el.Type == html.TextNode && strings.TrimSpace(el.Data) != "" {
			document.Blocks = append(document.Blocks, &blocks.Element{
				Kind:     blocks.Paragraph,
				Children: []blocks.Node{blocks.Text{Content: el.Data}},
			})
			continue
		}
		if el.Type != html.ElementNode {
			continue
		}

		switch el.Data {
		case "h1", "h2", "h3", "h4":
			document.Blocks = append(document.Blocks, &blocks.Element{
				Kind:     headingKind(el.Data),
				Children: parseInline(el, blocks.Marks{}, trustedDomains),
			})
		case "p":
			document.Blocks = append(document.Blocks, &blocks.Element{
				Kind:     blocks.Paragraph,
				Children: parseInline(el, blocks.Marks{}, trustedDomains),
			})
		case "blockquote":
			document.Blocks = append(document.Blocks, &blocks.Element{
				Kind:     blocks.Quote,
				Children: parseInline(el, blocks.Marks{}, trustedDomains),
			})
		case "pre":
			document.Blocks = append(document.Blocks, &blocks.Element{
				Kind:     blocks.MultiLineCode,
				Children: []blocks.Node{blocks.Text{Content: textContent(el)}},
			})
		case "code":
			document.Blocks = append(document.Blocks, &blocks.Element{
				Kind:     blocks.InlineCode,
				Children: []blocks.Node{blocks.Text{Content: textContent(el)}},
			})
		default:
			slog.Warn("Unknown legacy body element", "tag", el.Data)
		}
	}

	document.Normalize()
	return document, nil
}

// parseInline собирает детей блока, накапливая marks по вложенным тегам.
func parseInline(root *html.Node, marks blocks.Marks, trusted []string) []blocks.Node {
	var res []blocks.Node

	for el := root.FirstChild; el != nil; el = el.NextSibling {
		if el.Type == html.TextNode {
			res = append(res, blocks.Text{Content: el.Data, Marks: marks})
			continue
		}
		if el.Type != html.ElementNode {
			continue
		}

		switch el.Data {
		case "strong", "b":
			res = append(res, parseInline(el, marks.With(blocks.MarkBold), trusted)...)
		case "em", "i":
			res = append(res, parseInline(el, marks.With(blocks.MarkItalic), trusted)...)
		case "u":
			res = append(res, parseInline(el, marks.With(blocks.MarkUnderline), trusted)...)
		case "s", "del", "strike":
			res = append(res, parseInline(el, marks.With(blocks.MarkStrikethrough), trusted)...)
		case "a":
			if link := parseLink(el, marks, trusted); link != nil {
				res = append(res, link)
			}
		case "img":
			if img := parseImage(el); img != nil {
				res = append(res, img)
			}
		case "br":
			res = append(res, &blocks.Element{
				Kind:     blocks.LineBreak,
				Children: []blocks.Node{blocks.Text{}},
			})
		default:
			res = append(res, parseInline(el, marks, trusted)...)
		}
	}

	return res
}

func parseLink(el *html.Node, marks blocks.Marks, trusted []string) *blocks.Element {
	href := getAttrValue("href", el.Attr)
	if href == "" {
		return nil
	}
	return &blocks.Element{
		Kind:     ops.LinkKind(href, trusted),
		URL:      href,
		Children: parseInline(el, marks, trusted),
	}
}

func parseImage(el *html.Node) *blocks.Element {
	src := getAttrValue("src", el.Attr)
	if src == "" {
		return nil
	}

	width, _ := strconv.Atoi(getAttrValue("width", el.Attr))
	height, _ := strconv.Atoi(getAttrValue("height", el.Attr))

	return &blocks.Element{
		Kind: blocks.Image,
		Image: &blocks.ImageAttrs{
			Src:    src,
			Alt:    getAttrValue("alt", el.Attr),
			Width:  width,
			Height: height,
		},
		Children: []blocks.Node{blocks.Text{}},
	}
}

func headingKind(tag string) blocks.Kind {
	switch tag {
	case "h1":
		return blocks.Heading1
	case "h2":
		return blocks.Heading2
	case "h3":
		return blocks.Heading3
	}
	return blocks.Heading4
}

func textContent(root *html.Node) string {
	var sb strings.Builder
	iterNodes(root, func(child *html.Node) bool {
		if child.Type == html.TextNode {
			sb.WriteString(child.Data)
		}
		return false
	})
	return sb.String()
}

func findElementByTagName(rootNode *html.Node, tagName string) *html.Node {
	var el *html.Node
	iterNodes(rootNode, func(child *html.Node) bool {
		if child.Type == html.ElementNode && child.Data == tagName {
			el = child
			return true
		}
		return false
	})
	return el
}

func getBody(rootNode *html.Node) *html.Node {
	return findElementByTagName(rootNode, "body")
}

func iterNodes(node *html.Node, f func(child *html.Node) bool) {
	if f(node) {
		return
	}
	for p := node.FirstChild; p != nil; p = p.NextSibling {
		iterNodes(p, f)
	}
}

func getAttrValue(key string, attrs []html.Attribute) string {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
