package runlock

// Config holds configuration for the run lease backend.
type Config struct {
	// Addr is the redis address (host:port). Empty disables redis and the
	// lease falls back to an in-process guard.
	Addr string `mapstructure:"addr" default:""`
	// Password is the redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the redis database number.
	DB int `mapstructure:"db" default:"0"`
	// TTLSeconds bounds how long a crashed run can hold the lease.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"900"`
}
