/*
 * pimc. Copyright (C) 2024-present the pimc authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License along
 * with this program; if not, write to the Free Software Foundation, Inc.,
 * 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 */

// Command pimc originates PIM-SM v2 Hello and Join/Prune messages to a
// single upstream neighbor for a statically configured multicast
// policy.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/pimc-project/pimc/internal/config"
	"github.com/pimc-project/pimc/internal/ifaces"
	"github.com/pimc-project/pimc/internal/rawsock"
	"github.com/pimc-project/pimc/pimsm"
)

const version = "0.1.0"

const (
	exitSuccess = 0
	exitConfig  = 1
	exitRuntime = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	var showConfig bool
	var showVersion bool

	root := &cobra.Command{
		Use:   "pimc [config.yaml]",
		Short: "PIM-SM v2 control-plane speaker",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Println("pimc", version)
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one config path argument")
			}
			return runSpeaker(args[0], showConfig)
		},
	}
	root.Flags().BoolVar(&showConfig, "show-config", false, "print the parsed configuration and exit")
	root.Flags().BoolVarP(&showVersion, "version", "v", false, "print the version and exit")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConfig
	}
	return exitSuccess
}

func runSpeaker(path string, showConfig bool) error {
	log := newLogger()

	doc, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("configuration error:\n%w", err)
	}

	if showConfig {
		fmt.Printf("%+v\n", doc)
		return nil
	}

	cfg, neighbor, err := doc.ToPolicy()
	if err != nil {
		return fmt.Errorf("configuration error:\n%w", err)
	}

	iface, err := ifaces.Resolve(doc.PIM.Interface)
	if err != nil {
		return fmt.Errorf("interface resolution error: %w", err)
	}

	sock, err := rawsock.Open(doc.PIM.Interface)
	if err != nil {
		return fmt.Errorf("privilege error: %w", err)
	}
	defer sock.Close()

	helloPeriod := time.Duration(doc.PIM.HelloPeriod) * time.Second
	if helloPeriod <= 0 {
		helloPeriod = 30 * time.Second
	}
	jpRefresh := time.Duration(doc.PIM.JPRefresh) * time.Second
	if jpRefresh <= 0 {
		jpRefresh = 60 * time.Second
	}

	cadence := pimsm.Cadence{
		HelloPeriod:     helloPeriod,
		JPRefreshPeriod: jpRefresh,
		JPHoldtime:      uint16(3 * jpRefresh / time.Second),
		DRPriority:      doc.PIM.DRPriority,
		GenerationID:    uint32(time.Now().UnixNano()),
		Neighbor:        neighbor,
		Source:          iface.Address,
	}

	loop := pimsm.NewLoop(cadence, sock, log, func() []pimsm.Update {
		return pimsm.Pack(cfg)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("pimc starting", "neighbor", neighbor, "interface", iface.Name, "groups", len(cfg.Groups))
	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("runtime error: %w", err)
	}
	log.Info("pimc exiting")
	return nil
}

func newLogger() *slog.Logger {
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))
}
