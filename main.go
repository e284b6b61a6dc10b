// SPDX-License-Identifier: MPL-2.0

// Command upkremap gives the assets of Unity packages fresh GUIDs.
package main

import cmd "github.com/upkremap/upkremap/cmd/upkremap"

func main() {
	cmd.Execute()
}
