package curve

import (
	"fmt"

	"github.com/sgostarter/i/commerr"
)

var (
	ErrEmptySeries      = fmt.Errorf("empty series: %w", commerr.ErrInvalidArgument)
	ErrInvalidTolerance = fmt.Errorf("tolerance must be at least 1: %w", commerr.ErrInvalidArgument)
	ErrInvalidDensity   = fmt.Errorf("density must be at least 2: %w", commerr.ErrInvalidArgument)
)
