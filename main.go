// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/blackroad/tfregistry/cmd/tfreg"

func main() {
	cmd.Execute()
}
