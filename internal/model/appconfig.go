package model

// AppConfig holds user-level application settings that persist between
// runs: the stock defaults prefilled into the CLI and web form, and the
// recently used job files.
type AppConfig struct {
	DefaultStockLengthMM int      `json:"default_stock_length_mm"`
	DefaultKerfMM        float64  `json:"default_kerf_mm"`
	LastImportDir        string   `json:"last_import_dir"`
	RecentJobs           []string `json:"recent_jobs"`
}

// MaxRecentJobs limits the recent jobs list.
const MaxRecentJobs = 10

func DefaultAppConfig() AppConfig {
	settings := DefaultSettings()
	return AppConfig{
		DefaultStockLengthMM: settings.StockLengthMM,
		DefaultKerfMM:        settings.KerfMM,
		RecentJobs:           []string{},
	}
}

// Settings returns the cut settings implied by the config defaults.
func (c AppConfig) Settings() CutSettings {
	return CutSettings{
		StockLengthMM: c.DefaultStockLengthMM,
		KerfMM:        c.DefaultKerfMM,
	}
}

// AddRecentJob puts path at the front of the recent jobs list, removing
// any earlier occurrence and trimming the list to MaxRecentJobs.
func (c *AppConfig) AddRecentJob(path string) {
	updated := []string{path}
	for _, p := range c.RecentJobs {
		if p != path {
			updated = append(updated, p)
		}
	}
	if len(updated) > MaxRecentJobs {
		updated = updated[:MaxRecentJobs]
	}
	c.RecentJobs = updated
}
