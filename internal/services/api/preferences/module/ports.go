package module

import (
	"notifygate/internal/services/api/preferences/domain"
)

// Ports exposes the cross-module surface of the preferences module
type Ports struct {
	// Reader serves point reads for the decision path
	Reader domain.ReaderPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
