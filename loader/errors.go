package loader

import (
	"fmt"

	"github.com/sgostarter/i/commerr"
)

var (
	ErrNotBound = fmt.Errorf("view not bound: %w", commerr.ErrNotFound)
	ErrStopped  = fmt.Errorf("loader stopped: %w", commerr.ErrExiting)
)
