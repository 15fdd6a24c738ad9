package app

import (
	"github.com/mattclark/SHARE/internal/appcontext"
)

// Interface is an alias to the shared appcontext.Interface.
// This maintains backward compatibility while using the centralized interface definition.
type Interface = appcontext.Interface

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)
