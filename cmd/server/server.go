// Package main is the entry point of the server-match application.
// It sets up and starts the server by calling initialization functions from the internal package.
package main

import (
	"server-match/internal"
)

func main() {
	internal.Init()
}
