package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
// All date/time arithmetic runs in the single civil zone named by TZName.
type Config struct {
	BotToken     string        `envconfig:"BOT_TOKEN" required:"true"`
	DBPath       string        `envconfig:"DB_PATH" default:"./data/shiftmate.db"`
	TZName       string        `envconfig:"TZ_NAME" default:"Europe/Prague"`
	TickInterval time.Duration `envconfig:"TICK_INTERVAL" default:"30s"` // due-check cadence
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`    // debug|info|warn|error
	HTTPAddr     string        `envconfig:"HTTP_ADDR" default:":8080"`   // healthz
	WeatherLat   float64       `envconfig:"WEATHER_LAT" default:"50.028"`
	WeatherLon   float64       `envconfig:"WEATHER_LON" default:"15.200"`
	WeatherPlace string        `envconfig:"WEATHER_PLACE" default:"Kolín"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
