// Управление конфигурацией подсистемы редактора из переменных окружения.
// Содержит структуру Config для хранения параметров и функцию ReadConfig для их загрузки.
//
// Основные возможности:
//   - Загрузка конфигурации из переменных окружения с использованием тегов struct.
//   - Преобразование типов данных из переменных окружения (string, int, bool).
//   - Значения по умолчанию и ограничение диапазонов (период автосохранения,
//     потолок ретраев, таймаут HTTP).
//   - Разбор списка доверенных доменов для классификации ссылок.
package config

import (
	"log/slog"
	"net/url"
	"os"
	"reflect"
	"strings"
	"time"
)

type Config struct {
	// Базовый URL REST-бэкенда портала (обязателен для сохранения).
	APIURLRaw string `env:"NEWS_API_URL"`
	APIURL    *url.URL

	// Домены, ссылки на которые считаются внутренними. Через запятую.
	TrustedDomainsRaw string `env:"TRUSTED_DOMAINS"`
	TrustedDomains    []string

	DefaultLanguage string `env:"DEFAULT_LANGUAGE_CODE"`

	// Период автосохранения и повторного открытия гейта, секунды.
	AutosavePeriodSec int `env:"AUTOSAVE_PERIOD"`
	// Потолок счётчика ошибок, после которого отказ репортится иначе.
	SaveRetryLimit int `env:"SAVE_RETRY_LIMIT"`
	// Таймаут HTTP-запросов к бэкенду, секунды.
	HTTPTimeoutSec int `env:"HTTP_TIMEOUT"`

	// Вставка изображений из тулбара (функциональность не завершена).
	ImageInsertEnabled bool `env:"IMAGE_INSERT_ENABLED"`
}

// ReadConfig загружает конфигурацию из переменных окружения, проставляет
// значения по умолчанию и ограничивает диапазоны. Некорректный NEWS_API_URL
// завершает процесс: без валидного адреса бэкенда сохранение невозможно.
func ReadConfig() *Config {
	config := &Config{}

	envConfig("env", config)

	if config.APIURLRaw != "" {
		var err error
		config.APIURL, err = url.Parse(config.APIURLRaw)
		if err != nil {
			slog.Error("NEWS_API_URL incorrect", "err", err)
			os.Exit(1)
		}
	}

	for _, domain := range strings.Split(config.TrustedDomainsRaw, ",") {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain != "" {
			config.TrustedDomains = append(config.TrustedDomains, domain)
		}
	}

	if config.DefaultLanguage == "" {
		config.DefaultLanguage = "sv"
	}

	if config.AutosavePeriodSec < 5 || config.AutosavePeriodSec > 300 {
		config.AutosavePeriodSec = 30
	}

	if config.SaveRetryLimit <= 0 {
		config.SaveRetryLimit = 3
	}

	if config.HTTPTimeoutSec <= 0 {
		config.HTTPTimeoutSec = 15
	}

	return config
}

// AutosavePeriod - период автосохранения как Duration.
func (c *Config) AutosavePeriod() time.Duration {
	return time.Duration(c.AutosavePeriodSec) * time.Second
}

// HTTPTimeout - таймаут HTTP-клиента как Duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSec) * time.Second
}

// Присваивает полям в переданной структуре значения переменных. Название
// переменной для каждого поля лежит в теге этого поля.
func envConfig(key string, s interface{}) {
	v := reflect.ValueOf(s).Elem()
	typeParam := v.Type()
	for i := 0; i < v.NumField(); i++ {
		fName := typeParam.Field(i).Name
		fEnvTag := typeParam.Field(i).Tag.Get(key)

		if !Exist(fEnvTag) {
			continue
		}

		logValue := GetEnv(fEnvTag)
		if logValue == "" {
			continue
		}

		slog.Info("Set config value",
			slog.String("key", typeParam.Name()+"."+fName),
			slog.String("value", logValue),
			slog.String("source", "ENVIRONMENT"),
		)

		switch v.Field(i).Interface().(type) {
		case string:
			v.Field(i).SetString(GetEnv(fEnvTag))
		case int:
			v.Field(i).SetInt(int64(GetIntEnv(fEnvTag)))
		case bool:
			v.Field(i).SetBool(GetBoolEnv(fEnvTag))
		}
	}
}
