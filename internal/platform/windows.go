// SPDX-License-Identifier: MPL-2.0

// Package platform guards against filesystem names that do not travel
// across the operating systems a compiled bundle may be checked out on.
package platform

import "strings"

// windowsReservedNames are base names Windows reserves for devices. Files
// with these names cannot be created regardless of extension, so using one
// as an output file stem would make the bundle unwritable on Windows.
var windowsReservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// IsWindowsReservedName reports whether name collides with a Windows
// reserved device name. The check ignores case and any extension, matching
// how Windows itself treats these names.
func IsWindowsReservedName(name string) bool {
	upper := strings.ToUpper(name)
	if idx := strings.LastIndex(upper, "."); idx != -1 {
		upper = upper[:idx]
	}
	return windowsReservedNames[upper]
}
