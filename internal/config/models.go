package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"cmsarticle/internal/models"

	"gopkg.in/yaml.v3"
)

// ModelsFile - содержимое MODELS_FILE.
type ModelsFile struct {
	Models []ModelEntry         `yaml:"models"`
	Roles  map[string][]string `yaml:"roles"`
}

type ModelEntry struct {
	Name            string   `yaml:"name"`
	Fields          []string `yaml:"fields"`
	SectionRequired bool     `yaml:"section_required"`
	TagsRequired    bool     `yaml:"tags_required"`
	FullText        bool     `yaml:"full_text"`
}

// ContentSetup - разобранные модели контента и права ролей.
type ContentSetup struct {
	Models []models.ContentModel
	Roles  map[string][]string
}

// LoadModels читает описание моделей. Если файла нет - только встроенная модель "article".
func LoadModels(path string) (*ContentSetup, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ContentSetup{
			Models: []models.ContentModel{models.DefaultArticleModel()},
			Roles:  map[string][]string{},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseModels(raw)
}

func ParseModels(raw []byte) (*ContentSetup, error) {
	var f ModelsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse models file: %w", err)
	}
	if len(f.Models) == 0 {
		return nil, errors.New("models file declares no models")
	}

	out := &ContentSetup{Roles: f.Roles}
	if out.Roles == nil {
		out.Roles = map[string][]string{}
	}
	seen := map[string]struct{}{}
	for _, e := range f.Models {
		if !models.ValidModelName(e.Name) {
			return nil, fmt.Errorf("invalid model name %q", e.Name)
		}
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("model %q declared twice", e.Name)
		}
		seen[e.Name] = struct{}{}

		fields, err := models.ParseFields(e.Fields)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", e.Name, err)
		}
		if e.SectionRequired && !fields.Has(models.FieldSection) {
			return nil, fmt.Errorf("model %q: section_required without section field", e.Name)
		}
		if e.TagsRequired && !fields.Has(models.FieldTags) {
			return nil, fmt.Errorf("model %q: tags_required without tags field", e.Name)
		}
		out.Models = append(out.Models, models.ContentModel{
			Name:            e.Name,
			Fields:          fields,
			SectionRequired: e.SectionRequired,
			TagsRequired:    e.TagsRequired,
			FullText:        e.FullText,
		})
	}
	return out, nil
}
