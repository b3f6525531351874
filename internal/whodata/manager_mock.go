package whodata

import (
	"log/slog"
	"time"
)

// NewMockManager wraps an in-memory dataset, for tests of packages that
// consume a Manager. Reload on a mock manager reads from config, which is
// empty unless set with MockSetConfig.
func NewMockManager(data *Dataset) *Manager {
	m := &Manager{logger: slog.Default()}
	if data == nil {
		data = &Dataset{LoadedAt: time.Now()}
	}
	m.setDataset(data)
	return m
}

// MockSetConfig changes the sources a later Reload reads from.
func (m *Manager) MockSetConfig(config Config) {
	m.config = config
}
