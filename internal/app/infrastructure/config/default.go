package config

import "time"

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

func GetDefault() *Config {
	return &Config{
		App: App{
			LogLevel: "info",
			LogFile:  "logs/notifwhitelist.log",
			GinMode:  "release",
			Listen:   "127.0.0.1:6463",
			LinkBase: "https://discord.com",
		},
		Data: Data{
			Backend: BackendFile,
			Path:    "data",
		},
		Limiter: Limiter{
			Requests: 20,
			Per:      time.Second,
		},
		Sound: Sound{
			MaxBytes: 4 << 20,
		},
	}
}
