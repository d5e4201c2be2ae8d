// Package cli is the subcommand front end (out of spec.md's core per
// §1; the core only dictates inputs/outputs, not the parser). It wires
// cobra commands onto the internal packages that implement §4.
package cli

import (
	"github.com/sirupsen/logrus"

	"github.com/kadena-community/pactup/internal/alias"
	"github.com/kadena-community/pactup/internal/catalog"
	"github.com/kadena-community/pactup/internal/config"
	"github.com/kadena-community/pactup/internal/installer"
	"github.com/kadena-community/pactup/internal/layout"
	"github.com/kadena-community/pactup/internal/pactlog"
)

// app carries the dependencies every subcommand needs, resolved once in
// PersistentPreRunE from flags + environment (spec.md §6).
type app struct {
	cfg       config.Config
	layout    layout.Layout
	log       *logrus.Logger
	catalog   *catalog.Client
	installer *installer.Installer
	aliases   alias.Store
}

func newApp(cfg config.Config) (*app, error) {
	l, err := layout.Resolve(cfg.BaseDir)
	if err != nil {
		return nil, err
	}

	log := pactlog.New(cfg.LogLevel)

	return &app{
		cfg:       cfg,
		layout:    l,
		log:       log,
		catalog:   catalog.New(nil),
		installer: installer.New(l, log),
		aliases:   alias.Store{Layout: l},
	}, nil
}
