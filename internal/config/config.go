package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Shopdesk"`
		// Directory for settings and the cached company profile.
		// Empty means <user config dir>/shopdesk.
		DataDir string `envconfig:"DATA_DIR" default:""`
	}

	Sheets struct {
		// Fallback endpoint used until the user configures their own in Settings.
		DefaultURL string        `envconfig:"SHEETS_DEFAULT_URL" default:"http://localhost:8090/sheets"`
		Timeout    time.Duration `envconfig:"SHEETS_TIMEOUT" default:"30s"`
	}

	Auth struct {
		AdminPassword string        `envconfig:"ADMIN_PASSWORD" default:"admin"`
		SessionSecret string        `envconfig:"SESSION_SECRET" default:"shopdesk-local-secret"`
		SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	}

	Sheetd struct {
		Port         int    `envconfig:"SHEETD_PORT" default:"8090"`
		WorkbookPath string `envconfig:"SHEETD_WORKBOOK" default:"shopdesk.xlsx"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
