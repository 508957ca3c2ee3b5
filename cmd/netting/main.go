// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Command netting runs connectivity, DNS and certificate checks against
// domains from the command line.
package main

import "github.com/H0llyW00dzZ/netting/src/cli"

func main() {
	cli.Execute()
}
