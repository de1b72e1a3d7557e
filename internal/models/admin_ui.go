package models

// Browser - описание таблицы админки для модели.
type Browser struct {
	Model            string         `json:"model"`
	DefaultSortField string         `json:"default_sort_field"`
	DefaultSortOrder string         `json:"default_sort_order"`
	DataFields       []BrowserField `json:"data_fields"`
}

type BrowserField struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

func (b *Browser) InsertDataField(name, title string) {
	b.DataFields = append(b.DataFields, BrowserField{Name: name, Title: title})
}

type BrowserRow struct {
	ID    int64    `json:"id"`
	Cells []string `json:"cells"`
}

// Widget - элемент формы изменения статьи.
type Widget struct {
	UID      string `json:"uid"`
	Kind     string `json:"kind"`
	Weight   int    `json:"weight"`
	Label    string `json:"label"`
	Value    any    `json:"value,omitempty"`
	Required bool   `json:"required"`
	HSize    string `json:"h_size,omitempty"`
	Model    string `json:"model,omitempty"`
	AddLabel string `json:"add_btn_label,omitempty"`
	Unique   bool   `json:"unique,omitempty"`
}

type Form struct {
	Model   string              `json:"model"`
	Action  string              `json:"action,omitempty"`
	Widgets []Widget            `json:"widgets"`
	Rules   map[string][]string `json:"rules,omitempty"`
}

func (f *Form) AddWidget(w Widget) { f.Widgets = append(f.Widgets, w) }

func (f *Form) AddRule(field, rule string) {
	if f.Rules == nil {
		f.Rules = map[string][]string{}
	}
	f.Rules[field] = append(f.Rules[field], rule)
}
