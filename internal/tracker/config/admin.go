package config

// AdminConfig содержит настройки доступа к административным маршрутам.
// Пароль передается в заголовке X-Admin-Password и сравнивается
// за постоянное время; это отдельный секрет, не связанный с bearer
// токенами пользователей.
type AdminConfig struct {
	Password string `yaml:"password" env:"TRACKER_ADMIN_PASSWORD" env-default:""`
}
