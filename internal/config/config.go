package config

import "time"

// Config holds settings for both talkroom binaries. The server section is
// ignored by the client and vice versa, so one file can drive both.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Client ClientConfig `mapstructure:"client" yaml:"client"`
}

// ServerConfig holds room server settings.
type ServerConfig struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	DBPath            string        `mapstructure:"db_path" yaml:"db_path"`
	TicketSecret      string        `mapstructure:"ticket_secret" yaml:"ticket_secret"`
}

// ClientConfig holds chat client settings.
type ClientConfig struct {
	ServerURL    string `mapstructure:"server_url" yaml:"server_url"`
	IdentityPath string `mapstructure:"identity_path" yaml:"identity_path"`
	LogPath      string `mapstructure:"log_path" yaml:"log_path"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		LogLevel: "info",
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   5 * time.Second,
			DBPath:            "talkroom.db",
			TicketSecret:      "change-me",
		},
		Client: ClientConfig{
			ServerURL:    "http://localhost:8080",
			IdentityPath: "identity.db",
			LogPath:      "talkroom-client.log",
		},
	}
}
