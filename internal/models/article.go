package models

import (
	"sort"
	"strings"
	"time"
)

const (
	StatusPublished   = "published"
	StatusWaiting     = "waiting"
	StatusUnpublished = "unpublished"
)

type Article struct {
	ID          int64     `json:"id"`
	Model       string    `json:"model"`
	Language    string    `json:"language"`
	AuthorID    *int64    `json:"authorId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Body        string    `json:"body"`
	Images      []string  `json:"images"`
	Status      string    `json:"status"`
	SectionID   *int64    `json:"sectionId,omitempty"`
	TagIDs      []int64   `json:"tagIds"`
	Starred     bool      `json:"starred"`
	PublishTime time.Time `json:"publishTime"`
	ViewsCount  int       `json:"viewsCount"`
	// CommentsCount обновляется при просмотре из подсистемы комментариев
	CommentsCount int              `json:"commentsCount"`
	ExtLinks      []string         `json:"extLinks"`
	Localizations map[string]int64 `json:"localizations,omitempty"`
	RouteAliasID  *int64           `json:"routeAliasId,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`

	// Разрешённые ссылки, заполняются сервисом
	Section    *Section    `json:"-"`
	Tags       []*Tag      `json:"-"`
	RouteAlias *RouteAlias `json:"-"`
}

func (a *Article) IsNew() bool { return a.ID == 0 }

// Localization возвращает ID статьи-перевода на языке lang.
func (a *Article) Localization(lang string) (int64, bool) {
	if a.Localizations == nil {
		return 0, false
	}
	id, ok := a.Localizations[lang]
	return id, ok && id != 0
}

func (a *Article) SetLocalization(lang string, id int64) {
	if id == 0 {
		delete(a.Localizations, lang)
		return
	}
	if a.Localizations == nil {
		a.Localizations = map[string]int64{}
	}
	a.Localizations[lang] = id
}

// SortedTags - теги по убыванию веса (при равном весе - по названию).
func (a *Article) SortedTags() []*Tag {
	out := make([]*Tag, len(a.Tags))
	copy(out, a.Tags)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// TagsString - названия тегов через запятую.
func (a *Article) TagsString() string {
	tags := a.SortedTags()
	titles := make([]string, 0, len(tags))
	for _, t := range tags {
		titles = append(titles, t.Title)
	}
	return strings.Join(titles, ",")
}

// SaveArticleRequest - данные формы создания/изменения статьи.
// swagger:model SaveArticleRequest
type SaveArticleRequest struct {
	Language      string           `json:"language"      example:"en"`
	Title         string           `json:"title"         validate:"required,max=255" example:"Как писать middleware в Go"`
	Description   string           `json:"description"   validate:"max=1024"`
	Body          string           `json:"body"          example:"<p>Контент</p>"`
	Images        []string         `json:"images"        validate:"dive,required"`
	Status        string           `json:"status"        validate:"omitempty,oneof=published waiting unpublished"`
	SectionID     *int64           `json:"sectionId"`
	TagIDs        []int64          `json:"tagIds"        validate:"max=20"`
	Starred       *bool            `json:"starred"`
	PublishTime   *time.Time       `json:"publishTime"`
	ExtLinks      []string         `json:"extLinks"      validate:"dive,url"`
	Localizations map[string]int64 `json:"localizations"`
	RouteAlias    string           `json:"routeAlias"    example:"/news/my-article"`
}
