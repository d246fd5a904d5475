// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/colorit/colorit/cmd/colorit"

func main() {
	cmd.Execute()
}
