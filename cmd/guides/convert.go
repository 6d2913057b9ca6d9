package main

import (
	"fmt"
	"os"

	// Packages
	vectordrawable "github.com/chalpu/go-guides/pkg/vectordrawable"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ConvertCommands struct {
	Convert ConvertCommand `cmd:"" group:"CATALOG" help:"Convert an SVG to an Android vector drawable"`
}

type ConvertCommand struct {
	Path   string `arg:"" type:"existingfile" help:"SVG file to convert"`
	Output string `name:"output" short:"o" help:"Write to file instead of stdout"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *ConvertCommand) Run(ctx *Globals) error {
	data, err := os.ReadFile(cmd.Path)
	if err != nil {
		return err
	}
	xml, err := vectordrawable.ConvertBytes(data)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Path, err)
	}
	if cmd.Output != "" {
		return os.WriteFile(cmd.Output, []byte(xml), 0644)
	}
	fmt.Print(xml)
	return nil
}
