package reconcile

import "time"

// Config holds the reconciliation job settings.
type Config struct {
	// IntervalMinutes is the scheduler period for automatic runs.
	IntervalMinutes int `mapstructure:"interval_minutes" default:"60"`
	// BatchLimit caps how many expired exits a single run processes.
	// Anything beyond the cap is picked up by the next run.
	BatchLimit int `mapstructure:"batch_limit" default:"500"`
	// ArchivePrefix is the object key prefix for archived exits.
	ArchivePrefix string `mapstructure:"archive_prefix" default:"exits"`
}

// Interval returns the scheduler period as a duration.
func (c Config) Interval() time.Duration {
	minutes := c.IntervalMinutes
	if minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}
