package module

import (
	prefdomain "notifygate/internal/services/api/preferences/domain"
)

// Ports are the cross-module dependencies the events module consumes
type Ports struct {
	// Prefs serves preference reads on the decision path
	Prefs prefdomain.ReaderPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
