package main

import (
	"os"

	"github.com/laxjson/laxjson/cmd/laxjson/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
