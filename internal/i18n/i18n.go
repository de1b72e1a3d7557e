// Package i18n - каталог сообщений плагина статей.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Translator переводит идентификаторы сообщений вида "article@section".
// Для неизвестного идентификатора возвращается он сам.
type Translator struct {
	cat      *catalog.Builder
	fallback language.Tag
	langs    map[string]language.Tag
}

func New(langs []string, fallback string) (*Translator, error) {
	fb, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("fallback language %q: %w", fallback, err)
	}
	t := &Translator{
		cat:      catalog.NewBuilder(catalog.Fallback(fb)),
		fallback: fb,
		langs:    map[string]language.Tag{},
	}
	for _, l := range langs {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", l, err)
		}
		t.langs[l] = tag
	}
	for tag, msgs := range bundled {
		for key, msg := range msgs {
			if err := t.cat.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("catalog %s/%s: %w", tag, key, err)
			}
		}
	}
	return t, nil
}

// Set добавляет или переопределяет перевод.
func (t *Translator) Set(lang, key, msg string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return err
	}
	return t.cat.SetString(tag, key, msg)
}

func (t *Translator) T(lang, key string, args ...any) string {
	tag, ok := t.langs[lang]
	if !ok {
		tag = t.fallback
	}
	p := message.NewPrinter(tag, message.Catalog(t.cat))
	return p.Sprintf(key, args...)
}

var bundled = map[language.Tag]map[string]string{
	language.English: {
		"article@section":                "Section",
		"article@starred":                "Starred",
		"article@publish_time":           "Publish time",
		"article@tags":                   "Tags",
		"article@external_links":         "External links",
		"article@add_link":               "Add link",
		"article@word_yes":               "Yes",
		"article@title":                  "Title",
		"article@description":            "Description",
		"article@body":                   "Body",
		"article@images":                 "Images",
		"article@localization":           "Translation (%s)",
		"article@section_used_by_entity": "Section \"%s\" is used by %s \"%s\".",
		"article@tag_used_by_entity":     "Tag \"%s\" is used by %s \"%s\".",
		"article@perm_set_starred":       "Set starred flag on %s",
		"article@perm_set_publish_time":  "Set publish time of %s",
		"article@perm_modify":            "Modify %s",
		"article@perm_delete":            "Delete %s",
		"article@ago_just_now":           "just now",
		"article@ago_minutes":            "%d min ago",
		"article@ago_hours":              "%d h ago",
		"article@ago_days":               "%d days ago",
	},
	language.Russian: {
		"article@section":                "Раздел",
		"article@starred":                "Избранное",
		"article@publish_time":           "Время публикации",
		"article@tags":                   "Теги",
		"article@external_links":         "Внешние ссылки",
		"article@add_link":               "Добавить ссылку",
		"article@word_yes":               "Да",
		"article@title":                  "Заголовок",
		"article@description":            "Описание",
		"article@body":                   "Текст",
		"article@images":                 "Изображения",
		"article@localization":           "Перевод (%s)",
		"article@section_used_by_entity": "Раздел «%s» используется: %s «%s».",
		"article@tag_used_by_entity":     "Тег «%s» используется: %s «%s».",
		"article@perm_set_starred":       "Отмечать избранное: %s",
		"article@perm_set_publish_time":  "Менять время публикации: %s",
		"article@perm_modify":            "Изменять: %s",
		"article@perm_delete":            "Удалять: %s",
		"article@ago_just_now":           "только что",
		"article@ago_minutes":            "%d мин. назад",
		"article@ago_hours":              "%d ч. назад",
		"article@ago_days":               "%d дн. назад",
	},
}
