package wastatus

import "github.com/nyaruka/ezconf"

// Config is our top level configuration object
type Config struct {
	Address           string `help:"the address we will listen on"`
	Port              int    `help:"the port we will listen on"`
	VerifyToken       string `help:"the shared secret the provider presents during webhook verification"`
	ServiceKey        string `help:"the service account key used to talk to the store, as a single JSON blob"`
	FirebaseProjectID string `help:"the firebase project our message logs live in, defaults to the service key's project"`
	LogsCollection    string `help:"the collection holding our message log records"`
	LogLevel          string `help:"the logging level to use"`
	SentryDSN         string `help:"the DSN used for logging errors to Sentry"`
	Version           string `help:"the version being run"`
}

// NewConfig returns a new default configuration object
func NewConfig() *Config {
	return &Config{
		Address:        "",
		Port:           4000,
		LogsCollection: "whatsappLogs",
		LogLevel:       "info",
		Version:        "Dev",
	}
}

// LoadConfig loads our configuration from the passed in filename, with
// environment variables and command line flags taking precedence
func LoadConfig(filename string) *Config {
	config := NewConfig()
	loader := ezconf.NewLoader(
		config,
		"wastatus", "WAStatus - reconciles delivery status callbacks against message logs",
		[]string{filename},
	)
	loader.MustLoad()
	return config
}
