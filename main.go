// SPDX-License-Identifier: MPL-2.0

// Command lynxlink autolinks Lynx native modules into an Android project.
package main

import cmd "github.com/kafitra/lynxlink/cmd/lynxlink"

func main() {
	cmd.Execute()
}
