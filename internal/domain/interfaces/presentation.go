package interfaces

import domaintypes "taskflow/internal/domain/types"

// SchemeSignal is the ambient system colour-scheme preference.
type SchemeSignal interface {
	PrefersDark() bool
}

// Marker is the global presentation flag that renderers read to pick a style scope.
type Marker interface {
	Apply(mode domaintypes.Mode)
}
