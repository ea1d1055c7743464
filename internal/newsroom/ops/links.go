package ops

import (
	"net/url"
	"strings"

	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/blocks"
)

// IsExternalURL классифицирует URL по списку доверенных доменов.
// Относительные ссылки и ссылки на доверенный домен (включая поддомены)
// считаются внутренними; всё остальное - внешнее. Список доменов -
// конфигурация развёртывания, не зашитая логика.
func IsExternalURL(rawURL string, trustedDomains []string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return true
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		// Относительный путь внутри портала; mailto и прочие
		// бесхостовые схемы - внешние.
		return u.Scheme != ""
	}

	for _, domain := range trustedDomains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain == "" {
			continue
		}
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return false
		}
	}
	return true
}

// LinkKind возвращает тип ноды ссылки для URL: internal-link для доверенных
// доменов, external-link для прочих.
func LinkKind(rawURL string, trustedDomains []string) blocks.Kind {
	if IsExternalURL(rawURL, trustedDomains) {
		return blocks.ExternalLink
	}
	return blocks.InternalLink
}
