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

// Command mclst is the diagnostic multicast beacon companion: it
// either sends periodic beacons to a group or listens on that group
// and reports loss/latency.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/pimc-project/pimc/internal/mclst"
	"github.com/pimc-project/pimc/pimsm"
)

func main() {
	os.Exit(run())
}

func run() int {
	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))

	var iface string

	root := &cobra.Command{
		Use:   "mclst",
		Short: "multicast beacon diagnostic tool",
	}
	root.PersistentFlags().StringVar(&iface, "interface", "", "outbound/inbound interface address (dotted quad)")

	var period time.Duration
	var ttl int
	sendCmd := &cobra.Command{
		Use:   "send <group> <port>",
		Short: "periodically emit beacons to a multicast group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(log, iface, args[0], args[1], period, ttl)
		},
	}
	sendCmd.Flags().DurationVar(&period, "period", time.Second, "interval between beacons")
	sendCmd.Flags().IntVar(&ttl, "ttl", 16, "multicast TTL")

	listenCmd := &cobra.Command{
		Use:   "listen <group> <port>",
		Short: "listen for beacons and report loss/latency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListen(log, iface, args[0], args[1])
		},
	}

	root.AddCommand(sendCmd, listenCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func resolveQuadPort(iface, group, port string) ([4]byte, [4]byte, int, error) {
	ifAddr, err := pimsm.ParseAddr(iface)
	if err != nil {
		return [4]byte{}, [4]byte{}, 0, fmt.Errorf("interface address: %w", err)
	}
	groupAddr, err := pimsm.ParseAddr(group)
	if err != nil {
		return [4]byte{}, [4]byte{}, 0, fmt.Errorf("group address: %w", err)
	}
	var p int
	if _, err := fmt.Sscanf(port, "%d", &p); err != nil {
		return [4]byte{}, [4]byte{}, 0, fmt.Errorf("port: %w", err)
	}
	return ifAddr.Bytes(), groupAddr.Bytes(), p, nil
}

func runSend(log *slog.Logger, iface, group, port string, period time.Duration, ttl int) error {
	ifAddr, groupAddr, p, err := resolveQuadPort(iface, group, port)
	if err != nil {
		return err
	}

	sender, err := mclst.OpenSender(ifAddr, groupAddr, p, ttl)
	if err != nil {
		return err
	}
	defer sender.Close()

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	log.Info("mclst send starting", "group", group, "port", p)
	for range ticker.C {
		if err := sender.SendOne(); err != nil {
			log.Warn("beacon send failed", "error", err)
		}
	}
	return nil
}

func runListen(log *slog.Logger, iface, group, _ string) error {
	ifAddr, groupAddr, _, err := resolveQuadPort(iface, group, "0")
	if err != nil {
		return err
	}

	l, err := mclst.Open(groupAddr, ifAddr, log)
	if err != nil {
		return err
	}
	defer l.Close()

	go func() {
		for range time.Tick(10 * time.Second) {
			snap := l.Stats().Snapshot()
			log.Info("mclst stats", "received", snap.Received, "lost", snap.Lost,
				"avg_latency", snap.AverageLatency, "max_latency", snap.MaxLatency)
		}
	}()

	return l.Run()
}
