// SPDX-License-Identifier: MPL-2.0

// Command skillforge compiles declarative skill selections into
// conflict-checked, content-versioned agent bundles.
package main

import (
	cmd "github.com/skillforge/skillforge/cmd/skillforge"
)

func main() {
	cmd.Execute()
}
