package client

import (
	"context"

	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/autosave"
	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/dto"
)

// BodySaver связывает координатор автосохранения с REST-клиентом:
// снимок содержимого вкладывается в перевод сущности и уходит целиком
// на PUT. Реализует autosave.Saver.
type BodySaver struct {
	Client *Client
	Slug   string
	// Базовая сущность, к которой подмешивается снимок. Берется из Fetch
	// при открытии редактора.
	News *dto.News
}

func (s *BodySaver) Save(ctx context.Context, snap autosave.Snapshot) error {
	news := s.News
	if news == nil {
		news = &dto.News{Slug: s.Slug}
	}

	tr := news.Translation(snap.LanguageCode)
	tr.Title = snap.Title
	tr.Body = snap.Body
	tr.ShortDescription = snap.ShortDescription

	return s.Client.Save(ctx, s.Slug, snap.LanguageCode, news)
}

func (s *BodySaver) Publish(ctx context.Context, snap autosave.Snapshot) (string, error) {
	req := &dto.PublishRequest{
		Title:            snap.Title,
		Image:            snap.Image,
		ShortDescription: snap.ShortDescription,
		Translations: []dto.NewsTranslation{{
			Title:            snap.Title,
			LanguageCode:     snap.LanguageCode,
			Body:             snap.Body,
			ShortDescription: snap.ShortDescription,
		}},
	}
	return s.Client.Publish(ctx, s.Slug, snap.LanguageCode, req)
}
