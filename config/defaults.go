package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	// Store defaults; the file names match the historical data set so
	// an existing library can adopt circulate without renaming files
	v.SetDefault("catalog.path", "database.txt")
	v.SetDefault("ledger.path", "logfile.txt")

	// A loan becomes overdue strictly after 60 calendar days
	v.SetDefault("overdue.threshold_days", 60)

	// Recommendation defaults
	v.SetDefault("recommend.count", 5)
	v.SetDefault("recommend.newness_days", 100) // "new" = purchased within 100 days
	v.SetDefault("recommend.newness_weight", 2.0)
	v.SetDefault("recommend.genre_weight", 6.0)
	v.SetDefault("recommend.include_read", false)

	// Watch defaults
	v.SetDefault("watch.debounce_ms", 500)
}
