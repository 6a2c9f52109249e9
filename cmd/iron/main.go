// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command iron seals JSON payloads into Fe26.2 tokens and unseals them.
//
//	iron seal '{"user":"alice"}' --ttl 1h
//	echo "$TOKEN" | iron unseal -
//	iron version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/atotto/clipboard"

	"github.com/MKhiriev/go-iron/internal/config"
	"github.com/MKhiriev/go-iron/internal/logger"
	"github.com/MKhiriev/go-iron/internal/secret"
	"github.com/MKhiriev/go-iron/internal/service"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		logger:     logger.NewLogger("iron-cli"),
		newService: newSealService,
		copyToken:  clipboard.WriteAll,
	}

	if err := a.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "iron: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newSealService(cfg *config.StructuredConfig, log *logger.Logger) (service.SealService, error) {
	prompt := func() (string, error) {
		return secret.Prompt(int(os.Stdin.Fd()), os.Stderr, "Password: ")
	}

	passwords, err := service.LoadPasswords(cfg.Password, prompt)
	if err != nil {
		return nil, err
	}

	return service.NewSealService(passwords.Seal, passwords.Source, cfg.IronOptions(), log)
}
