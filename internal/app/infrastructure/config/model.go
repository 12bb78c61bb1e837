package config

import (
	"time"
)

type Config struct {
	App     App     `koanf:"app"`
	Data    Data    `koanf:"data"`
	Limiter Limiter `koanf:"limiter"`
	Sound   Sound   `koanf:"sound"`
}

type App struct {
	LogLevel  string `koanf:"log_level"`
	LogFile   string `koanf:"log_file"`
	GinMode   string `koanf:"gin_mode"`
	Listen    string `koanf:"listen"`
	AuthToken string `koanf:"auth_token"`
	LinkBase  string `koanf:"link_base"` // deep links in custom toasts: <link_base>/channels/<guild|@me>/<channel>/<message>
}

type Data struct {
	Backend string `koanf:"backend"` // file|sqlite
	Path    string `koanf:"path"`    // directory for file, database file for sqlite
}

type Limiter struct {
	Requests int           `koanf:"requests"` // сколько запросов
	Per      time.Duration `koanf:"per"`      // за какое время
}

type Sound struct {
	MaxBytes int64 `koanf:"max_bytes"`
}
