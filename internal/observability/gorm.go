package observability

import (
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"
)

// newTracingPlugin is a seam for tests.
var newTracingPlugin = func() gorm.Plugin { return tracing.NewPlugin(tracing.WithoutMetrics()) }

// InstrumentDB registers the GORM OpenTelemetry plugin on db so every query
// becomes a child span of the request span carried in its context. It is a
// no-op when tracing is disabled.
func InstrumentDB(db *gorm.DB, enabled bool) error {
	if !enabled || db == nil {
		return nil
	}
	return db.Use(newTracingPlugin())
}
