// Утилита нормализации сохранённых тел новостей. Читает тело из файла или
// stdin, парсит его в модель редактора, нормализует дерево и выводит
// каноничный JSON. Флаг -html включает импорт дореформенных HTML-тел.
//
// Основные возможности:
//   - Проверка и нормализация JSON-тел (слияние листьев, пустые блоки).
//   - Конвертация legacy HTML в формат редактора.
//   - Классификация ссылок по списку доверенных доменов из окружения.
package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/blocks"
	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/blocks/slate"
	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/config"
	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/legacyhtml"
)

func main() {
	inPath := flag.String("in", "", "Path of body file (default stdin)")
	outPath := flag.String("out", "", "Path of output file (default stdout)")
	fromHTML := flag.Bool("html", false, "Treat input as legacy HTML body")
	flag.Parse()

	cfg := config.ReadConfig()

	in := os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			slog.Error("Open input", "path", *inPath, "err", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	var doc *blocks.Document
	if *fromHTML {
		var err error
		doc, err = legacyhtml.Parse(in, cfg.TrustedDomains)
		if err != nil {
			slog.Error("Parse legacy HTML body", "err", err)
			os.Exit(1)
		}
	} else {
		raw, err := io.ReadAll(in)
		if err != nil {
			slog.Error("Read input", "err", err)
			os.Exit(1)
		}
		doc = slate.ParseOrDefault(string(raw))
	}

	doc.Normalize()

	out, err := slate.Serialize(doc)
	if err != nil {
		slog.Error("Serialize body", "err", err)
		os.Exit(1)
	}
	out = append(out, '\n')

	if *outPath == "" {
		os.Stdout.Write(out)
		return
	}
	if err := os.WriteFile(*outPath, out, 0644); err != nil {
		slog.Error("Write output", "path", *outPath, "err", err)
		os.Exit(1)
	}
}
