package main

import (
	"fmt"
	"os"

	// Packages
	version "github.com/chalpu/go-guides/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type VersionCommands struct {
	Version VersionCommand `cmd:"" help:"Print the version"`
}

type VersionCommand struct{}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *VersionCommand) Run(ctx *Globals) error {
	if ctx.Debug {
		_, err := os.Stdout.Write(version.JSON(execName()))
		return err
	}
	fmt.Println(version.Version())
	return nil
}
