package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Schedule ScheduleConfig `mapstructure:"schedule" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// Driver selects the backend: "postgres" uses URL, "sqlite" uses Path.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL    string `mapstructure:"url"    validate:"required_if=Driver postgres,omitempty,url"`
	Path   string `mapstructure:"path"   validate:"required_if=Driver sqlite"`
}

// ScheduleConfig contains the review scheduling settings. The intervals are
// the startup defaults; runtime changes go through the settings endpoint and
// are persisted in the database.
type ScheduleConfig struct {
	FirstInterval  int  `mapstructure:"first_interval"  validate:"required,min=1,max=365"`
	SecondInterval int  `mapstructure:"second_interval" validate:"required,min=1,max=365"`
	ThirdInterval  int  `mapstructure:"third_interval"  validate:"required,min=1,max=365"`
	Auto           bool `mapstructure:"auto"`
}
