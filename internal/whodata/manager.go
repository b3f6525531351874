package whodata

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"dashboard.covid19.org/internal/logging"
)

// Manager holds the most recent complete Dataset and replaces it on reload.
type Manager struct {
	config      Config
	client      *http.Client
	logger      *slog.Logger
	dataMutex   sync.RWMutex
	data        *Dataset
	lastUpdated time.Time
	version     uint64
	reloadMutex sync.Mutex
}

// InitManager performs the initial load. A failed initial load is returned
// as-is so the caller can abort start-up.
func InitManager(ctx context.Context, config Config, client *http.Client, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	manager := &Manager{
		config: config,
		client: client,
		logger: logger.With(slog.String("component", "whodata_manager")),
	}

	data, err := Load(logging.WithLogger(ctx, manager.logger), config, client)
	if err != nil {
		return nil, err
	}
	manager.setDataset(data)

	return manager, nil
}

// Snapshot returns the current dataset. Callers must treat it as read-only.
func (manager *Manager) Snapshot() *Dataset {
	manager.dataMutex.RLock()
	defer manager.dataMutex.RUnlock()
	return manager.data
}

// LastUpdated is the time the current dataset was installed.
func (manager *Manager) LastUpdated() time.Time {
	manager.dataMutex.RLock()
	defer manager.dataMutex.RUnlock()
	return manager.lastUpdated
}

// Reload fetches all sources again. The new dataset replaces the current one
// only if every source loaded; otherwise the current dataset stays in place
// and the error is returned.
func (manager *Manager) Reload(ctx context.Context) (*Dataset, error) {
	manager.reloadMutex.Lock()
	defer manager.reloadMutex.Unlock()

	data, err := Load(logging.WithLogger(ctx, manager.logger), manager.config, manager.client)
	if err != nil {
		return nil, err
	}
	manager.setDataset(data)
	return data, nil
}

func (manager *Manager) setDataset(data *Dataset) {
	manager.dataMutex.Lock()
	defer manager.dataMutex.Unlock()

	manager.version++
	data.Version = manager.version
	manager.data = data
	manager.lastUpdated = time.Now()

	if manager.config.Verbose {
		logging.LogOperation(manager.logger, "who_data_installed",
			slog.Uint64("version", data.Version))
	}
}

// PrintStatistics logs the size of the current dataset.
func (manager *Manager) PrintStatistics() {
	data := manager.Snapshot()
	if data == nil {
		return
	}
	manager.logger.Info("who data statistics",
		slog.String("cases_source", manager.config.CasesURL),
		slog.Time("last_updated", manager.LastUpdated()),
		slog.Uint64("version", data.Version),
		slog.Int("case_rows", len(data.Cases)),
		slog.Int("summary_rows", len(data.Latest)),
		slog.Int("vaccination_rows", len(data.Vaccinations)))
}
