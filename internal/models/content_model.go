package models

import (
	"fmt"
	"sort"
	"strings"
)

// FieldSet - набор необязательных полей модели контента.
// Базовые поля (title, description, body, language, author, status) есть у любой модели.
type FieldSet uint32

const (
	FieldImages FieldSet = 1 << iota
	FieldSection
	FieldTags
	FieldStarred
	FieldPublishTime
	FieldViewsCount
	FieldCommentsCount
	FieldExtLinks
	FieldLocalization
	FieldRouteAlias
)

var fieldNames = map[string]FieldSet{
	"images":         FieldImages,
	"section":        FieldSection,
	"tags":           FieldTags,
	"starred":        FieldStarred,
	"publish_time":   FieldPublishTime,
	"views_count":    FieldViewsCount,
	"comments_count": FieldCommentsCount,
	"ext_links":      FieldExtLinks,
	"localization":   FieldLocalization,
	"route_alias":    FieldRouteAlias,
}

// AllFields - полный набор полей статьи.
const AllFields = FieldImages | FieldSection | FieldTags | FieldStarred | FieldPublishTime |
	FieldViewsCount | FieldCommentsCount | FieldExtLinks | FieldLocalization | FieldRouteAlias

func (s FieldSet) Has(f FieldSet) bool { return s&f == f }

// ParseFields переводит имена полей из конфигурации в FieldSet.
func ParseFields(names []string) (FieldSet, error) {
	var out FieldSet
	for _, n := range names {
		f, ok := fieldNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, fmt.Errorf("unknown field %q", n)
		}
		out |= f
	}
	return out, nil
}

// Names возвращает имена полей набора в алфавитном порядке.
func (s FieldSet) Names() []string {
	var out []string
	for name, f := range fieldNames {
		if s.Has(f) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// ContentModel описывает зарегистрированную модель контента.
type ContentModel struct {
	Name            string   `json:"name"`
	Fields          FieldSet `json:"-"`
	SectionRequired bool     `json:"section_required"`
	TagsRequired    bool     `json:"tags_required"`
	FullText        bool     `json:"full_text"`
}

func (m ContentModel) Has(f FieldSet) bool { return m.Fields.Has(f) }

// DefaultArticleModel - модель "article" со всеми полями.
func DefaultArticleModel() ContentModel {
	return ContentModel{
		Name:            "article",
		Fields:          AllFields,
		SectionRequired: true,
		FullText:        true,
	}
}

// ValidModelName - имя модели попадает в имена индексов, поэтому только [a-z0-9_].
func ValidModelName(name string) bool {
	if name == "" || len(name) > 48 {
		return false
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}
