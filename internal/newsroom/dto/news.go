// Пакет dto описывает сущности REST-бэкенда портала, с которыми работает
// подсистема редактора: новость и её переводы. Тело (body) перевода -
// сериализованный документ редактора, см. пакет slate.
package dto

import "github.com/gofrs/uuid"

type News struct {
	ID               uuid.UUID         `json:"id,omitempty"`
	Slug             string            `json:"slug,omitempty"`
	Image            string            `json:"image,omitempty"`
	ShortDescription string            `json:"short_description,omitempty"`
	Published        bool              `json:"published,omitempty"`
	Translations     []NewsTranslation `json:"translations"`
}

type NewsTranslation struct {
	Title            string `json:"title"`
	LanguageCode     string `json:"language_code"`
	Body             string `json:"body"`
	ShortDescription string `json:"short_description,omitempty"`
}

// Translation возвращает перевод для кода языка, создавая его при отсутствии.
func (n *News) Translation(languageCode string) *NewsTranslation {
	for i := range n.Translations {
		if n.Translations[i].LanguageCode == languageCode {
			return &n.Translations[i]
		}
	}
	n.Translations = append(n.Translations, NewsTranslation{LanguageCode: languageCode})
	return &n.Translations[len(n.Translations)-1]
}

// PublishRequest - payload публикации: помимо тела несёт заголовок,
// обложку и короткое описание из отдельной формы.
type PublishRequest struct {
	Title            string            `json:"title"`
	Image            string            `json:"image,omitempty"`
	ShortDescription string            `json:"short_description,omitempty"`
	Translations     []NewsTranslation `json:"translations"`
}

// PublishResponse - ответ публикации с адресом опубликованной статьи.
type PublishResponse struct {
	URL string `json:"url"`
}
