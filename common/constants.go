package common

// Application name constants
const (
	// AppName is the application name
	AppName = "filenote"

	// DefaultAttribute is the extended attribute used when none is given
	DefaultAttribute = "user.xdg.comment"

	// LegacyAttribute is the attribute name used by older versions
	LegacyAttribute = "user.comment"
)

// Copyright is printed by the --copyright flag
const Copyright = `Copyright 2015-2026 Klaus Alexander Seistrup

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.`
