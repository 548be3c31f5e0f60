package stockroom

import "log/slog"

// Config holds global configuration read by every world at creation
var Config config = config{
	poolCapacity: 10,
}

type config struct {
	poolCapacity int
	logger       *slog.Logger
}

// SetPoolCapacity sets the initial slot capacity of each component store
func (c *config) SetPoolCapacity(n int) {
	c.poolCapacity = max(n, 0)
}

// SetLogger configures a debug logger for world lifecycle events; nil disables logging
func (c *config) SetLogger(l *slog.Logger) {
	c.logger = l
}
