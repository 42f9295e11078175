// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import "errors"

var (
	// ErrNameRequired is returned when a project is created without a name.
	ErrNameRequired = errors.New("name is required")
	// ErrMessageRequired is returned when a chat message is blank.
	ErrMessageRequired = errors.New("message is required")
	// ErrProjectNotFound is returned when a project id does not resolve.
	ErrProjectNotFound = errors.New("project not found")
)
