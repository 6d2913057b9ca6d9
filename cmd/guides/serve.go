package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	// Packages
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"

	aws "github.com/chalpu/go-guides/pkg/aws"
	httphandler "github.com/chalpu/go-guides/pkg/httphandler"
	manager "github.com/chalpu/go-guides/pkg/manager"
	version "github.com/chalpu/go-guides/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ServerCommands struct {
	Serve ServeCommand `cmd:"" group:"SERVER" help:"Run the development catalog server"`
}

type ServeCommand struct {
	Addr       string `name:"addr" default:"localhost:8080" help:"Listen address"`
	Storage    string `name:"storage" default:"mem://guides" help:"Asset bucket URL (mem://, file://, s3://)"`
	S3Bucket   string `name:"s3-bucket" help:"Issue real S3 presigned upload URLs for this bucket instead of serving PUTs locally"`
	S3Endpoint string `name:"s3-endpoint" help:"S3 endpoint override, for localstack or minio"`
	AdminToken string `name:"admin-token" env:"GUIDES_ADMIN_TOKEN" help:"Bearer token required on catalog endpoints (empty disables auth)"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *ServeCommand) Run(ctx *Globals) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(ctx),
	}))

	// Create the manager
	opts := []manager.Opt{
		manager.WithStorage(cmd.Storage),
		manager.WithBaseURL("http://" + cmd.Addr),
	}
	if cmd.S3Bucket != "" {
		awsOpts := []aws.Opt{}
		if cmd.S3Endpoint != "" {
			awsOpts = append(awsOpts, aws.WithEndpoint(cmd.S3Endpoint))
		}
		presigner, err := aws.New(ctx.ctx, cmd.S3Bucket, awsOpts...)
		if err != nil {
			return fmt.Errorf("failed to create presigner: %w", err)
		}
		opts = append(opts, manager.WithSigner(presigner))
	}
	mgr, err := manager.New(ctx.ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create manager: %w", err)
	}
	defer mgr.Close()

	// Create the router and register handlers
	router, err := httprouter.NewRouter(ctx.ctx, "/", "*", "guides", version.Version())
	if err != nil {
		return fmt.Errorf("failed to create router: %w", err)
	}
	if err := httphandler.RegisterHandlers(mgr, router, cmd.AdminToken); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}

	// Create and run the HTTP server
	srv, err := httpserver.New(cmd.Addr, http.Handler(router), nil)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("guides started", "version", version.Version(), "addr", cmd.Addr, "storage", cmd.Storage, "auth", cmd.AdminToken != "")
	if err := srv.Run(ctx.ctx); err != nil {
		return err
	}
	logger.Info("guides stopped")
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func logLevel(ctx *Globals) slog.Level {
	if ctx.GetDebug() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
