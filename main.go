package main

import (
	"os"

	"github.com/MarcGrol/stashpaysample/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
