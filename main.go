package main

import (
	"github/walletgrid/go-custody-wallet/cmd"
)

func main() {
	cmd.Execute()
}
