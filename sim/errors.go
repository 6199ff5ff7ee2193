// sim/errors.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"errors"
)

var (
	ErrEmptyTypePool    = errors.New("Spawn pattern has no aircraft types")
	ErrInvalidSnapshot  = errors.New("Invalid generator snapshot")
	ErrPatternInUse     = errors.New("Spawn pattern already belongs to a registry")
	ErrUnknownCategory  = errors.New("Unknown spawn pattern category")
	ErrUnknownMethod    = errors.New("Unknown spawn pattern method")
	ErrNoAirportConfig  = errors.New("Airport configuration is missing or empty")
	ErrNoNavigationData = errors.New("Navigation data is missing or empty")
)
