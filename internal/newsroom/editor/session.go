// Сессия редактора тела новости: хранит текущий документ и выделение,
// превращает сырые события ввода (клавиши, клики) в операции мутации и
// отдаёт производное состояние для тулбара (активные marks, тип блока).
//
// Сессия - явный объект с явным жизненным циклом: создаётся на открытие
// документа, уничтожается на закрытие. Сетевых вызовов здесь нет, всё
// синхронно и в памяти; персистентность - забота координатора, которому
// сессия отдаёт сериализованный снимок через Body.
package editor

import (
	"errors"
	"io"
	"unicode/utf8"

	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/blocks"
	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/blocks/slate"
	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/config"
	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/legacyhtml"
	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/ops"
)

// ErrImageInsertDisabled - вставка изображений из тулбара выключена:
// функциональность в редакторе не завершена, операция остаётся в модели.
var ErrImageInsertDisabled = errors.New("image insert is disabled")

// Key - нормализованное событие клавиатуры от принимающего UI.
type Key struct {
	Rune  rune
	Enter bool
	Shift bool
	Ctrl  bool
}

type Session struct {
	cfg *config.Config
	doc *blocks.Document
	sel blocks.Selection

	activeMarks blocks.Marks
	activeKind  blocks.Kind
	// Размер шрифта - неактивная настройка, переносится как no-op.
	fontSize int
}

// NewSession создает сессию из сохранённого тела. Пустое или битое тело
// даёт каноничный пустой документ, курсор встаёт в начало первого блока.
func NewSession(body string, cfg *config.Config) *Session {
	s := &Session{
		cfg: cfg,
		doc: slate.ParseOrDefault(body),
	}
	s.sel = blocks.Collapsed(blocks.Path{0, 0}, 0)
	s.refresh()
	return s
}

// HandleKey обрабатывает клавишу. Возвращает true, если событие поглощено
// и принимающая сторона должна подавить действие браузера по умолчанию.
func (s *Session) HandleKey(k Key) bool {
	if k.Ctrl {
		var mark blocks.Mark
		switch k.Rune {
		case 'b':
			mark = blocks.MarkBold
		case 'i':
			mark = blocks.MarkItalic
		case 'u':
			mark = blocks.MarkUnderline
		case 's':
			mark = blocks.MarkStrikethrough
		default:
			return false
		}
		s.apply(ops.ToggleMark(s.doc, s.sel, mark))
		return true
	}

	if k.Enter {
		if k.Shift {
			s.apply(ops.InsertLineBreak(s.doc, s.sel))
			return true
		}
		// Новый параграф после текущего блока - правило едино для
		// заголовков, цитат и кода.
		s.apply(ops.InsertParagraphAfter(s.doc, s.sel))
		return true
	}

	if k.Rune != 0 {
		s.apply(ops.InsertText(s.doc, s.sel, string(k.Rune)))
		return true
	}

	return false
}

// Select устанавливает выделение и пересчитывает производное состояние.
func (s *Session) Select(sel blocks.Selection) {
	s.sel = sel
	s.refresh()
}

// ClickAt обрабатывает отпускание мыши. Пустое выделение внутри встроенного
// элемента растягивается на весь элемент: тулбар показывает "выбрана
// ссылка/тег", и элемент можно заменить повторной вставкой.
func (s *Session) ClickAt(p blocks.Point) {
	if embedPath, ok := s.embedAt(p.Path); ok {
		leafPath := append(embedPath.Clone(), 0)
		length := 0
		if t, ok := s.doc.TextAt(leafPath); ok {
			length = utf8.RuneCountInString(t.Content)
		}
		s.sel = blocks.Selection{
			Anchor: blocks.Point{Path: leafPath, Offset: 0},
			Focus:  blocks.Point{Path: leafPath.Clone(), Offset: length},
		}
	} else {
		s.sel = blocks.Collapsed(p.Path, p.Offset)
	}
	s.refresh()
}

// ToggleMark - кнопка тулбара: переключить mark на выделении.
func (s *Session) ToggleMark(mark blocks.Mark) {
	s.apply(ops.ToggleMark(s.doc, s.sel, mark))
}

// SetBlockKind - кнопка тулбара: сменить тип блоков выделения.
func (s *Session) SetBlockKind(kind blocks.Kind) {
	s.apply(ops.SetBlockKind(s.doc, s.sel, kind))
}

// InsertLink вставляет ссылку, классифицируя URL по доверенным доменам
// конфигурации. Пустые url или displayText - тихий no-op.
func (s *Session) InsertLink(url, displayText string) {
	external := ops.IsExternalURL(url, s.trustedDomains())
	s.apply(ops.InsertLink(s.doc, s.sel, url, displayText, external))
}

// InsertTag вставляет тег автора (student | committee | committee-position).
func (s *Session) InsertTag(author blocks.Author) {
	s.apply(ops.InsertTag(s.doc, s.sel, author))
}

// InsertImage выключена на границе UI, пока загрузка изображений в редакторе
// не доделана. Операция модели при этом существует, см. ops.InsertImage.
func (s *Session) InsertImage(src, alt string, width, height int) error {
	if s.cfg == nil || !s.cfg.ImageInsertEnabled {
		return ErrImageInsertDisabled
	}
	s.apply(ops.InsertImage(s.doc, s.sel, src, alt, width, height))
	return nil
}

// ImportHTML заменяет документ сессии результатом импорта дореформенного
// HTML-тела. Выделение сбрасывается в начало первого блока.
func (s *Session) ImportHTML(r io.Reader) error {
	doc, err := legacyhtml.Parse(r, s.trustedDomains())
	if err != nil {
		return err
	}
	s.doc = doc
	s.sel = blocks.Collapsed(blocks.Path{0, 0}, 0)
	s.refresh()
	return nil
}

// SetFontSize хранит значение, но документ не меняет: настройка-заглушка.
func (s *Session) SetFontSize(size int) {
	s.fontSize = size
}

func (s *Session) FontSize() int { return s.fontSize }

// Body возвращает сериализованный снимок документа для координатора.
func (s *Session) Body() (string, error) {
	return slate.SerializeString(s.doc)
}

func (s *Session) Document() *blocks.Document   { return s.doc }
func (s *Session) Selection() blocks.Selection  { return s.sel }
func (s *Session) ActiveMarks() blocks.Marks    { return s.activeMarks }
func (s *Session) ActiveBlockKind() blocks.Kind { return s.activeKind }

// IsEmpty сообщает, что все блоки документа пусты.
func (s *Session) IsEmpty() bool {
	for _, b := range s.doc.Blocks {
		if !blocks.IsEmptyBlock(b) {
			return false
		}
	}
	return true
}

func (s *Session) apply(doc *blocks.Document, sel blocks.Selection) {
	s.doc = doc
	s.sel = sel
	s.refresh()
}

func (s *Session) refresh() {
	s.activeMarks = ops.ActiveMarks(s.doc, s.sel)
	if b := s.doc.BlockOf(s.sel.Focus.Path); b != nil {
		s.activeKind = b.Kind
	}
}

// embedAt возвращает путь ближайшего встроенного элемента, содержащего путь.
func (s *Session) embedAt(p blocks.Path) (blocks.Path, bool) {
	for i := len(p); i >= 2; i-- {
		el, ok := s.doc.NodeAt(p[:i]).(*blocks.Element)
		if ok && el.Kind.IsInline() {
			return p[:i].Clone(), true
		}
	}
	return nil, false
}

func (s *Session) trustedDomains() []string {
	if s.cfg == nil {
		return nil
	}
	return s.cfg.TrustedDomains
}
