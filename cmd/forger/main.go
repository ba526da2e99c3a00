package main

import (
	"github.com/saylorsolutions/blacksmith/cmd/internal"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		internal.Fatal("Error: %v", err)
	}
}
