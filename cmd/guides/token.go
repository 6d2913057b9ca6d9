package main

import (
	"fmt"

	// Packages
	token "github.com/chalpu/go-guides/pkg/token"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type TokenCommands struct {
	Token TokenCommand `cmd:"" group:"AUTH" help:"Manage the admin credential"`
}

type TokenCommand struct {
	Set    TokenSetCommand    `cmd:"" help:"Store the admin credential and check it against the service"`
	Test   TokenTestCommand   `cmd:"" help:"Check the stored credential against the service"`
	Remove TokenRemoveCommand `cmd:"" help:"Forget the stored credential"`
}

type TokenSetCommand struct {
	Token string `arg:"" help:"Admin bearer credential"`
}

type TokenTestCommand struct{}

type TokenRemoveCommand struct{}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *TokenSetCommand) Run(ctx *Globals) error {
	if err := ctx.store.SetToken(cmd.Token); err != nil {
		return err
	}
	return probe(ctx)
}

func (cmd *TokenTestCommand) Run(ctx *Globals) error {
	return probe(ctx)
}

func (cmd *TokenRemoveCommand) Run(ctx *Globals) error {
	return ctx.store.RemoveToken()
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func probe(ctx *Globals) error {
	c, err := ctx.Client()
	if err != nil {
		return err
	}
	status, err := c.Probe(ctx.ctx)
	fmt.Println("credential:", status)
	if status == token.StatusInvalid {
		return err
	}
	return nil
}
