package scraper_service

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/sunr3d/ans-anexos/models"
)

const (
	AnexoIName  = "Anexo_I.pdf"
	AnexoIIName = "Anexo_II.pdf"

	pdfExt = ".pdf"
)

type rule struct {
	marker string
	name   string
}

// Порядок важен: срабатывает первое совпадение.
var hrefRules = []rule{
	{marker: "anexo i", name: AnexoIName},
	{marker: "anexo ii", name: AnexoIIName},
	{marker: "rol_2021", name: AnexoIName},
	{marker: "dut_2021", name: AnexoIIName},
}

var textRules = []rule{
	{marker: "anexo i", name: AnexoIName},
	{marker: "anexo ii", name: AnexoIIName},
}

// FindAttachments возвращает найденные анексы в порядке появления, не более
// одного на абсолютный URL. Сначала ссылки классифицируются по href; если
// найдено меньше двух, дополнительно проверяется видимый текст ссылок.
// Недостаточное количество ошибкой не считается.
func FindAttachments(doc *goquery.Document, base *url.URL, log *zap.Logger) []models.Attachment {
	var found []models.Attachment

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !isPDF(href) {
			return
		}

		name, ok := match(hrefRules, normalizeHref(href))
		if !ok {
			return
		}

		abs, ok := resolve(base, href, log)
		if !ok {
			return
		}
		found = append(found, models.Attachment{Name: name, URL: abs})
	})

	if len(found) < 2 {
		log.Debug("недостаточно ссылок по href, поиск по тексту ссылок", zap.Int("found", len(found)))

		doc.Find("a").Each(func(_ int, a *goquery.Selection) {
			href, exists := a.Attr("href")
			if !exists || !isPDF(href) {
				return
			}

			name, ok := match(textRules, normalizeText(a.Text()))
			if !ok {
				return
			}

			abs, ok := resolve(base, href, log)
			if !ok {
				return
			}
			found = append(found, models.Attachment{Name: name, URL: abs})
		})
	}

	return dedupByURL(found)
}

func isPDF(href string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(href)), pdfExt)
}

func match(rules []rule, s string) (string, bool) {
	for _, r := range rules {
		if containsMarker(s, r.marker) {
			return r.name, true
		}
	}
	return "", false
}

// containsMarker сообщает, входит ли marker в s так, что следом не идет буква
// или цифра: "anexo i" не совпадает внутри "anexo ii".
func containsMarker(s, marker string) bool {
	for offset := 0; offset <= len(s); {
		idx := strings.Index(s[offset:], marker)
		if idx < 0 {
			return false
		}
		end := offset + idx + len(marker)
		if end == len(s) {
			return true
		}
		next, _ := utf8.DecodeRuneInString(s[end:])
		if !unicode.IsLetter(next) && !unicode.IsDigit(next) {
			return true
		}
		offset += idx + 1
	}
	return false
}

func normalizeHref(href string) string {
	if unescaped, err := url.PathUnescape(href); err == nil {
		href = unescaped
	}
	return strings.ToLower(href)
}

func normalizeText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

func resolve(base *url.URL, href string, log *zap.Logger) (string, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		log.Debug("пропуск ссылки с некорректным href", zap.String("href", href), zap.Error(err))
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}

func dedupByURL(atts []models.Attachment) []models.Attachment {
	seen := make(map[string]struct{}, len(atts))
	unique := make([]models.Attachment, 0, len(atts))
	for _, att := range atts {
		if _, ok := seen[att.URL]; ok {
			continue
		}
		seen[att.URL] = struct{}{}
		unique = append(unique, att)
	}
	return unique
}
