package config

// Watcher is the read side of configuration hot reload. The server holds
// one for its lifetime and rebuilds the generation pipeline whenever a new
// snapshot arrives.
type Watcher interface {
	// GetCurrentConfig returns the latest validated snapshot. It never
	// returns nil once the watcher has been constructed.
	GetCurrentConfig() *Config

	// Subscribe returns a channel that receives each future snapshot.
	// Snapshots that fail validation are never delivered.
	Subscribe() <-chan *Config

	Close() error
}
