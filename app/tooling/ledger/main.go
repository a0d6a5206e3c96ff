// This program is a command line client for the public API of a ledger node.
package main

import "github.com/ledgerd/node/app/tooling/ledger/cmd"

func main() {
	cmd.Execute()
}
