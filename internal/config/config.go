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

// Package config loads the pimc YAML configuration document: a `pim`
// block naming the upstream neighbor plus a `multicast` sequence of
// per-group Join/Prune policy.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pimc-project/pimc/pimsm"
)

// Errors is a batch of configuration errors, each carrying the source
// line it was found on when available. Configuration errors are fatal
// but never reported one at a time.
type Errors []Error

// Error is one configuration error with an optional source line.
type Error struct {
	Line int
	Msg  string
}

func (e Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func (es Errors) Error() string {
	lines := make([]string, len(es))
	for i, e := range es {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// PIM holds the `pim` block of the config document.
type PIM struct {
	Neighbor    string `yaml:"neighbor"`
	Interface   string `yaml:"interface"`
	DRPriority  uint32 `yaml:"dr_priority"`
	HelloPeriod int    `yaml:"hello_period_seconds"`
	JPRefresh   int    `yaml:"jp_refresh_seconds"`
	LogFile     string `yaml:"log_file"`
}

// RPTGroup is the optional shared-tree block within a multicast
// group entry.
type RPTGroup struct {
	RP     string   `yaml:"rp"`
	Prunes []string `yaml:"prunes"`
}

// GroupDoc is one entry of the `multicast` sequence.
type GroupDoc struct {
	Group string    `yaml:"group"`
	RPT   *RPTGroup `yaml:"rpt"`
	SPT   []string  `yaml:"spt"`
}

// Document is the decoded, not-yet-validated configuration file.
type Document struct {
	PIM       PIM        `yaml:"pim"`
	Multicast []GroupDoc `yaml:"multicast"`
}

var docAllowedKeys = map[string]bool{"pim": true, "multicast": true}
var pimAllowedKeys = map[string]bool{
	"neighbor": true, "interface": true, "dr_priority": true,
	"hello_period_seconds": true, "jp_refresh_seconds": true, "log_file": true,
}
var groupAllowedKeys = map[string]bool{"group": true, "rpt": true, "spt": true}
var rptAllowedKeys = map[string]bool{"rp": true, "prunes": true}

// Load reads and parses the YAML document at path, rejecting unknown
// keys and batching all errors found before returning.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, Errors{{Msg: fmt.Sprintf("reading %s: %v", path, err)}}
	}
	return Parse(raw)
}

// Parse decodes raw YAML bytes into a Document, reporting every
// unknown key (with its source line) and any structural decode error
// before returning.
func Parse(raw []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, Errors{{Msg: err.Error()}}
	}

	if len(root.Content) == 0 {
		return &Document{}, nil
	}

	var errs Errors
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, Errors{{Line: doc.Line, Msg: "top-level document must be a mapping"}}
	}
	checkUnknownKeys(doc, docAllowedKeys, &errs)

	var out Document
	if err := doc.Decode(&out); err != nil {
		errs = append(errs, Error{Line: doc.Line, Msg: err.Error()})
	}

	if pimNode := findKey(doc, "pim"); pimNode != nil {
		checkUnknownKeys(pimNode, pimAllowedKeys, &errs)
	}
	if mcNode := findKey(doc, "multicast"); mcNode != nil && mcNode.Kind == yaml.SequenceNode {
		for _, item := range mcNode.Content {
			checkUnknownKeys(item, groupAllowedKeys, &errs)
			if rptNode := findKey(item, "rpt"); rptNode != nil {
				checkUnknownKeys(rptNode, rptAllowedKeys, &errs)
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &out, nil
}

// checkUnknownKeys walks a mapping node's keys and appends an error
// for any key not present in allowed.
func checkUnknownKeys(n *yaml.Node, allowed map[string]bool, errs *Errors) {
	if n == nil || n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if !allowed[key.Value] {
			*errs = append(*errs, Error{
				Line: key.Line,
				Msg:  fmt.Sprintf("unknown field %q", key.Value),
			})
		}
	}
}

func findKey(n *yaml.Node, key string) *yaml.Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// ToPolicy converts the decoded document into a validated pimsm.JPConfig
// plus the neighbor address. Address-parse errors are batched the same
// way Parse batches its errors. Semantic validation (JPConfig.Validate)
// runs only when every address parsed, and reports only the first
// violation it finds.
func (d *Document) ToPolicy() (pimsm.JPConfig, pimsm.Addr, error) {
	var errs Errors

	neighbor, err := pimsm.ParseAddr(d.PIM.Neighbor)
	if err != nil {
		errs = append(errs, Error{Msg: err.Error()})
	}

	cfg := pimsm.JPConfig{Groups: make([]pimsm.GroupConfig, 0, len(d.Multicast))}
	for _, gd := range d.Multicast {
		group, err := pimsm.ParseAddr(gd.Group)
		if err != nil {
			errs = append(errs, Error{Msg: err.Error()})
			continue
		}

		gc := pimsm.GroupConfig{Group: group}

		if gd.RPT != nil {
			rp, err := pimsm.ParseAddr(gd.RPT.RP)
			if err != nil {
				errs = append(errs, Error{Msg: err.Error()})
				continue
			}
			prunes := make([]pimsm.Addr, 0, len(gd.RPT.Prunes))
			for _, p := range gd.RPT.Prunes {
				a, err := pimsm.ParseAddr(p)
				if err != nil {
					errs = append(errs, Error{Msg: err.Error()})
					continue
				}
				prunes = append(prunes, a)
			}
			gc.RPT = &pimsm.RPT{RP: rp, Prunes: prunes}
		}

		spt := make([]pimsm.Addr, 0, len(gd.SPT))
		for _, s := range gd.SPT {
			a, err := pimsm.ParseAddr(s)
			if err != nil {
				errs = append(errs, Error{Msg: err.Error()})
				continue
			}
			spt = append(spt, a)
		}
		gc.SPT = spt

		cfg.Groups = append(cfg.Groups, gc)
	}

	if len(errs) > 0 {
		return pimsm.JPConfig{}, 0, errs
	}

	if err := cfg.Validate(); err != nil {
		return pimsm.JPConfig{}, 0, Errors{{Msg: err.Error()}}
	}

	return cfg, neighbor, nil
}
