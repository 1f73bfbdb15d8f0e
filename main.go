// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/depwalk/cmd/depwalk"

func main() {
	cmd.Execute()
}
