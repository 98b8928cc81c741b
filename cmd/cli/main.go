package main

import (
	"os"

	"taskhub/cmd/cli/auth"
	"taskhub/cmd/cli/root"
	"taskhub/cmd/cli/users"
)

func main() {
	auth.Init(root.GetRoot())
	users.Init(root.GetRoot())

	if err := root.GetRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
