package config

import "time"

// SupabaseConfig содержит настройки внешнего провайдера идентификации.
type SupabaseConfig struct {
	URL     string        `yaml:"url" env:"TRACKER_SUPABASE_URL" env-default:"http://localhost:54321"`
	AnonKey string        `yaml:"anon_key" env:"TRACKER_SUPABASE_ANON_KEY" env-default:""`
	Timeout time.Duration `yaml:"timeout" env:"TRACKER_SUPABASE_TIMEOUT" env-default:"10s"`
}
