package container

import "fmt"

// Store backends accepted by the store option.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

// Options holds the service configuration. Every field is a CLI flag and a
// SERVICE_* environment variable.
type Options struct {
	Port        int    `default:"8080"                                                    help:"Port to listen on"                                          short:"p"`
	BaseURL     string `default:""                                                        help:"Prefix of returned short URLs (default http://localhost:<port>)"`
	Store       string `default:"sqlite"                                                  help:"Mapping store: sqlite, postgres, redis or memory"           short:"s"`
	Database    string `default:"file:url_mappings.db?_journal_mode=WAL&_busy_timeout=5000" help:"SQLite DSN or Postgres connection string"                 short:"d"`
	RedisAddr   string `default:"localhost:6379"                                          help:"Redis server address"                                       short:"r"`
	Events      bool   `default:"false"                                                   help:"Publish mapping.created events to Redis Streams"`
	CodeLength  int    `default:"6"                                                       help:"Length of generated short codes"                            short:"c"`
	MaxAttempts int    `default:"32"                                                      help:"Insert attempts before giving up (0 = unbounded)"`
	LogLevel    string `default:"info"                                                    help:"Log level: debug, info, warn or error"`
	LogFormat   string `default:"console"                                                 help:"Log format: console or json"`
	LogFile     string `default:""                                                        help:"Also write JSON logs to this rotating file"`
}

// ShortURLBase returns the prefix short codes are appended to.
func (o *Options) ShortURLBase() string {
	if o.BaseURL != "" {
		return o.BaseURL
	}

	return fmt.Sprintf("http://localhost:%d", o.Port)
}
