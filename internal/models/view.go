package models

// ArticleView - JSON-представление статьи для публичного API.
type ArticleView struct {
	ID            int64                   `json:"id"`
	Model         string                  `json:"model"`
	Language      string                  `json:"language"`
	Title         string                  `json:"title"`
	Description   string                  `json:"description"`
	Body          string                  `json:"body"`
	Images        []string                `json:"images,omitempty"`
	URL           string                  `json:"url,omitempty"`
	Starred       *bool                   `json:"starred,omitempty"`
	Section       *Section                `json:"section,omitempty"`
	Tags          []*Tag                  `json:"tags,omitempty"`
	ExtLinks      []string                `json:"ext_links,omitempty"`
	Status        string                  `json:"status"`
	PublishTime   *PublishTimeView        `json:"publish_time,omitempty"`
	ViewsCount    *int                    `json:"views_count,omitempty"`
	CommentsCount *int                    `json:"comments_count,omitempty"`
	Localizations map[string]*ArticleView `json:"localizations,omitempty"`
}

type PublishTimeView struct {
	W3C            string `json:"w3c"`
	PrettyDate     string `json:"pretty_date"`
	PrettyDateTime string `json:"pretty_date_time"`
	Ago            string `json:"ago"`
}
