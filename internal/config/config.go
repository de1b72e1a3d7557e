package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	DbHost    string `envconfig:"DB_HOST"`
	DbPort    string `envconfig:"DB_PORT" default:"5432"`
	DbUser    string `envconfig:"DB_USER"`
	DbPass    string `envconfig:"DB_PASSWORD"`
	DbName    string `envconfig:"DB_NAME"`
	DbSSLMode string `envconfig:"DB_SSLMODE" default:"disable"`

	JWTSecret string `envconfig:"JWT_SECRET"`

	Log      string `envconfig:"LOG"`
	LogLevel string `envconfig:"LOGLEVEL" default:"info"`
	LogDir   string `envconfig:"LOG_DIR" default:"logs"`
	Env      string `envconfig:"ENV" default:"prod"` // dev|prod

	// Языки контента, первый - язык по умолчанию, если DEFAULT_LANGUAGE не задан
	Languages       []string `envconfig:"LANGUAGES" default:"en,ru"`
	DefaultLanguage string   `envconfig:"DEFAULT_LANGUAGE"`

	ModelsFile        string   `envconfig:"MODELS_FILE" default:"models.yaml"`
	TagWeightSchedule string   `envconfig:"TAG_WEIGHT_SCHEDULE" default:"0 3 * * *"`
	SiteURL           string   `envconfig:"SITEURL"`
	CommentsEnabled   bool     `envconfig:"COMMENTS_ENABLED" default:"true"`
	CORSOrigins       []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует - чтобы не создавать зависимость от logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("envconfig: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))

	langs := make([]string, 0, len(c.Languages))
	seen := map[string]struct{}{}
	for _, l := range c.Languages {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		langs = append(langs, l)
	}
	c.Languages = langs

	c.DefaultLanguage = strings.ToLower(strings.TrimSpace(c.DefaultLanguage))
	if c.DefaultLanguage == "" && len(c.Languages) > 0 {
		c.DefaultLanguage = c.Languages[0]
	}
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	// Критичные: БД
	if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}

	if len(c.Languages) == 0 {
		return nil, fmt.Errorf("LANGUAGES is empty")
	}
	if !c.HasLanguage(c.DefaultLanguage) {
		return nil, fmt.Errorf("DEFAULT_LANGUAGE %q is not listed in LANGUAGES", c.DefaultLanguage)
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		warnings = append(warnings, "JWT_SECRET is empty")
	}
	if c.SiteURL == "" {
		warnings = append(warnings, "SITEURL is empty, absolute links will not be built")
	}

	return warnings, nil
}

func (c *Config) HasLanguage(lang string) bool {
	for _, l := range c.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// GetDSN - полная DSN (с паролем)
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe - DSN без пароля (для логов)
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}
