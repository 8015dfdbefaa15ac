// SPDX-License-Identifier: MPL-2.0

package main

import cmd "rb-cli/cmd/rb"

func main() {
	cmd.Execute()
}
