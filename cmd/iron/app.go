// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/MKhiriev/go-iron/internal/config"
	"github.com/MKhiriev/go-iron/internal/iron"
	"github.com/MKhiriev/go-iron/internal/logger"
	"github.com/MKhiriev/go-iron/internal/service"
)

const usage = `usage:
  iron seal [json|-] [--ttl duration] [--copy] [flags]
  iron unseal <token|-> [flags]
  iron version

Run "iron <command> --help" for the flags of a command.
`

var (
	errUsage          = errors.New("invalid usage")
	errInvalidPayload = errors.New("payload is not valid JSON")
)

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	logger     *logger.Logger
	newService func(cfg *config.StructuredConfig, log *logger.Logger) (service.SealService, error)
	copyToken  func(token string) error
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, usage)
		return errUsage
	}

	var err error
	switch args[0] {
	case "seal":
		err = a.seal(ctx, args[1:])
	case "unseal":
		err = a.unseal(ctx, args[1:])
	case "version":
		a.printBuildInfo()
		return nil
	case "-h", "--help", "help":
		fmt.Fprint(a.stdout, usage)
		return nil
	default:
		fmt.Fprint(a.stderr, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	return err
}

func (a *app) seal(ctx context.Context, args []string) error {
	fs := a.flagSet("seal")
	copyToken := fs.Bool("copy", false, "Copy the token to the clipboard")

	svc, err := a.setup(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: seal takes at most one payload", errUsage)
	}

	input, err := a.input(fs.Arg(0))
	if err != nil {
		return err
	}
	if !json.Valid(input) {
		return errInvalidPayload
	}

	token, err := svc.Seal(ctx, json.RawMessage(input))
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, token)

	if *copyToken {
		if err := a.copyToken(token); err != nil {
			a.logger.Warn().Err(err).Msg("could not copy token to clipboard")
		}
	}
	return nil
}

func (a *app) unseal(ctx context.Context, args []string) error {
	fs := a.flagSet("unseal")

	svc, err := a.setup(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: unseal takes exactly one token", errUsage)
	}

	input, err := a.input(fs.Arg(0))
	if err != nil {
		return err
	}

	payload, err := svc.UnsealRaw(ctx, strings.TrimSpace(string(input)))
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, payload, "", "  "); err != nil {
		return fmt.Errorf("%w: %v", iron.ErrDecoding, err)
	}
	out.WriteByte('\n')

	_, err = a.stdout.Write(out.Bytes())
	return err
}

// setup parses the command line into a configuration and builds the service.
func (a *app) setup(fs *pflag.FlagSet, args []string) (service.SealService, error) {
	cfg, err := config.GetStructuredConfig(fs, args)
	if err != nil {
		return nil, err
	}

	if err := a.logger.SetLevel(cfg.Log.Level); err != nil {
		return nil, err
	}
	a.logger.Debug().Any("iron", cfg.Iron).Any("password", cfg.Password).Msg("received configs")

	if cfg.IronOptions().IsWeak() {
		a.logger.Warn().
			Int("recommended_iterations", iron.RecommendedIterations).
			Msg("key derivation uses fewer iterations than recommended")
	}

	return a.newService(cfg, a.logger)
}

func (a *app) flagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("iron "+name, pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// input returns arg itself, or stdin when arg is "-" or empty.
func (a *app) input(arg string) ([]byte, error) {
	if arg != "" && arg != "-" {
		return []byte(arg), nil
	}

	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return nil, fmt.Errorf("error reading stdin: %w", err)
	}
	return bytes.TrimSpace(data), nil
}

func (a *app) printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Fprintf(a.stdout, "Build version: %s\n", buildVersion)
	fmt.Fprintf(a.stdout, "Build date: %s\n", buildDate)
	fmt.Fprintf(a.stdout, "Build commit: %s\n", buildCommit)
}
