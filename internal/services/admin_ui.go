package services

import (
	"context"
	"html"
	"sort"

	"cmsarticle/internal/auth"
	"cmsarticle/internal/models"
)

const nbsp = "&nbsp;"

// browserColumns - какие необязательные колонки видит пользователь.
type browserColumns struct {
	section, starred, publishTime bool
}

func columnsFor(m models.ContentModel, p *auth.Principal) browserColumns {
	return browserColumns{
		section:     m.Has(models.FieldSection),
		starred:     m.Has(models.FieldStarred) && p.HasPermission(auth.PermSetStarred(m.Name)),
		publishTime: m.Has(models.FieldPublishTime) && p.HasPermission(auth.PermSetPublishTime(m.Name)),
	}
}

func (s *articleService) BrowserSetup(ctx context.Context, model, lang string) (*models.Browser, error) {
	m, err := s.models.Get(model)
	if err != nil {
		return nil, err
	}
	p := auth.FromContext(ctx)
	if !p.HasPermission(auth.PermModify(model)) {
		return nil, models.ErrForbidden
	}

	b := &models.Browser{Model: model, DefaultSortField: "created_at", DefaultSortOrder: "desc"}
	if m.Has(models.FieldPublishTime) {
		b.DefaultSortField = "publish_time"
	}

	cols := columnsFor(m, p)
	b.InsertDataField("title", s.i18n.T(lang, "article@title"))
	if cols.section {
		b.InsertDataField("section", s.i18n.T(lang, "article@section"))
	}
	if cols.starred {
		b.InsertDataField("starred", s.i18n.T(lang, "article@starred"))
	}
	if cols.publishTime {
		b.InsertDataField("publish_time", s.i18n.T(lang, "article@publish_time"))
	}
	return b, nil
}

// BrowserRow - ячейки строки в том же порядке, что и колонки BrowserSetup.
func (s *articleService) BrowserRow(ctx context.Context, a *models.Article, lang string) models.BrowserRow {
	row := models.BrowserRow{ID: a.ID, Cells: []string{html.EscapeString(a.Title)}}
	m, err := s.models.Get(a.Model)
	if err != nil {
		return row
	}

	cols := columnsFor(m, auth.FromContext(ctx))
	if cols.section {
		cell := nbsp
		if a.Section != nil {
			cell = html.EscapeString(a.Section.Title)
		}
		row.Cells = append(row.Cells, cell)
	}
	if cols.starred {
		cell := nbsp
		if a.Starred {
			cell = `<span class="label label-primary">` + s.i18n.T(lang, "article@word_yes") + `</span>`
		}
		row.Cells = append(row.Cells, cell)
	}
	if cols.publishTime {
		row.Cells = append(row.Cells, a.PublishTime.Format(prettyDateTimeLayout))
	}
	return row
}

// FormSetup - виджеты формы изменения статьи, отсортированные по весу.
func (s *articleService) FormSetup(ctx context.Context, a *models.Article, lang string) (*models.Form, error) {
	m, err := s.models.Get(a.Model)
	if err != nil {
		return nil, err
	}
	p := auth.FromContext(ctx)
	if !p.HasPermission(auth.PermModify(a.Model)) {
		return nil, models.ErrForbidden
	}
	cols := columnsFor(m, p)

	f := &models.Form{Model: a.Model}
	f.AddWidget(models.Widget{UID: "title", Kind: "text", Weight: 10,
		Label: s.i18n.T(lang, "article@title"), Value: a.Title, Required: true})
	f.AddWidget(models.Widget{UID: "description", Kind: "text", Weight: 20,
		Label: s.i18n.T(lang, "article@description"), Value: a.Description})

	if cols.starred {
		f.AddWidget(models.Widget{UID: "starred", Kind: "checkbox", Weight: 100,
			Label: s.i18n.T(lang, "article@starred"), Value: a.Starred})
	}
	if m.Has(models.FieldSection) {
		f.AddWidget(models.Widget{UID: "section", Kind: "section_select", Weight: 150,
			Label: s.i18n.T(lang, "article@section"), Value: a.SectionID,
			Required: m.SectionRequired, HSize: "col-sm-6"})
	}
	if m.Has(models.FieldImages) {
		f.AddWidget(models.Widget{UID: "images", Kind: "images", Weight: 400,
			Label: s.i18n.T(lang, "article@images"), Value: a.Images, Required: true})
	}
	if m.Has(models.FieldTags) {
		f.AddWidget(models.Widget{UID: "tags", Kind: "tag_tokens", Weight: 450,
			Label: s.i18n.T(lang, "article@tags"), Value: a.TagIDs, Required: m.TagsRequired})
	}
	f.AddWidget(models.Widget{UID: "body", Kind: "html", Weight: 500,
		Label: s.i18n.T(lang, "article@body"), Value: a.Body, Required: true})
	if m.Has(models.FieldExtLinks) {
		f.AddWidget(models.Widget{UID: "ext_links", Kind: "string_list", Weight: 1100,
			Label: s.i18n.T(lang, "article@external_links"), Value: a.ExtLinks,
			AddLabel: s.i18n.T(lang, "article@add_link"), Unique: true})
		f.AddRule("ext_links", "url")
	}
	if cols.publishTime {
		f.AddWidget(models.Widget{UID: "publish_time", Kind: "datetime", Weight: 1300,
			Label: s.i18n.T(lang, "article@publish_time"), Value: a.PublishTime,
			HSize: "col-sm-4 col-md-3 col-lg-2", Required: true})
	}
	if m.Has(models.FieldLocalization) {
		i := 0
		for _, l := range s.languages {
			if l == a.Language {
				continue
			}
			id, _ := a.Localization(l)
			f.AddWidget(models.Widget{UID: "localization_" + l, Kind: "entity_select", Weight: 1400 + i,
				Label: s.i18n.T(lang, "article@localization", l), Value: id, Model: a.Model})
			i++
		}
	}

	sort.SliceStable(f.Widgets, func(i, j int) bool { return f.Widgets[i].Weight < f.Widgets[j].Weight })
	return f, nil
}
