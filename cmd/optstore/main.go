package main

import (
	"github.com/LuciCodesStuff/GP2040-CE/cmd/optstore/cmd"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/di"
)

func main() {
	// Initialize dependency injection container
	container := di.NewContainer()

	cmd.Execute(container)
}
