// aviation/errors.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "errors"

var (
	// ErrInvalidConfiguration is returned (wrapped) for missing, malformed
	// or empty configuration and for missing or empty collaborators.
	ErrInvalidConfiguration = errors.New("Invalid configuration")
	// ErrTypeConstraint is returned (wrapped) when something that is not a
	// fully-constructed domain object is handed to a typed container or
	// when a constructor is given a record that doesn't describe one.
	ErrTypeConstraint = errors.New("Type constraint violated")

	ErrInvalidSRSCategory  = errors.New("Invalid same-runway separation category")
	ErrInvalidWeightClass  = errors.New("Invalid weight class")
	ErrNoMatchingFix       = errors.New("No matching fix")
	ErrUnknownAircraftType = errors.New("Unknown aircraft type")
)
