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

package pimsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDuplicateGroup(t *testing.T) {
	g := mustAddr(t, "239.1.1.1")
	cfg := JPConfig{Groups: []GroupConfig{{Group: g}, {Group: g}}}
	assert.Error(t, cfg.Validate())
}

func TestValidateNonMulticastGroup(t *testing.T) {
	cfg := JPConfig{Groups: []GroupConfig{{Group: mustAddr(t, "10.0.0.1")}}}
	assert.Error(t, cfg.Validate())
}

func TestValidatePruneListTooLong(t *testing.T) {
	prunes := make([]Addr, MaxPruneSGrptLen+1)
	for i := range prunes {
		prunes[i] = Addr(0x0a000000 + uint32(i))
	}
	cfg := JPConfig{Groups: []GroupConfig{
		{
			Group: mustAddr(t, "239.1.1.1"),
			RPT:   &RPT{RP: mustAddr(t, "1.1.1.1"), Prunes: prunes},
		},
	}}
	assert.Error(t, cfg.Validate())
}

func TestValidatePruneEqualsRP(t *testing.T) {
	rp := mustAddr(t, "1.1.1.1")
	cfg := JPConfig{Groups: []GroupConfig{
		{
			Group: mustAddr(t, "239.1.1.1"),
			RPT:   &RPT{RP: rp, Prunes: []Addr{rp}},
		},
	}}
	assert.Error(t, cfg.Validate())
}

func TestValidateDuplicateRPTPrune(t *testing.T) {
	s := mustAddr(t, "10.0.0.5")
	cfg := JPConfig{Groups: []GroupConfig{
		{
			Group: mustAddr(t, "239.1.1.1"),
			RPT:   &RPT{RP: mustAddr(t, "1.1.1.1"), Prunes: []Addr{s, s}},
		},
	}}
	assert.Error(t, cfg.Validate())
}

func TestValidateSPTOverlapsRPTPrune(t *testing.T) {
	s := mustAddr(t, "10.0.0.5")
	cfg := JPConfig{Groups: []GroupConfig{
		{
			Group: mustAddr(t, "239.1.1.1"),
			RPT:   &RPT{RP: mustAddr(t, "1.1.1.1"), Prunes: []Addr{s}},
			SPT:   []Addr{s},
		},
	}}
	assert.Error(t, cfg.Validate())
}

func TestValidateDuplicateSPT(t *testing.T) {
	s := mustAddr(t, "10.0.0.5")
	cfg := JPConfig{Groups: []GroupConfig{
		{Group: mustAddr(t, "239.1.1.1"), SPT: []Addr{s, s}},
	}}
	assert.Error(t, cfg.Validate())
}

func TestValidateRPTPruneListOverMax(t *testing.T) {
	prunes := make([]Addr, 181)
	for i := range prunes {
		prunes[i] = Addr(0x0a000000 + uint32(i))
	}
	cfg := JPConfig{Groups: []GroupConfig{
		{
			Group: mustAddr(t, "239.1.1.1"),
			RPT:   &RPT{RP: mustAddr(t, "1.1.1.1"), Prunes: prunes},
		},
	}}
	assert.Error(t, cfg.Validate())
}

func TestValidateAcceptsWellFormedPolicy(t *testing.T) {
	cfg := JPConfig{Groups: []GroupConfig{
		{
			Group: mustAddr(t, "239.1.1.1"),
			RPT:   &RPT{RP: mustAddr(t, "1.1.1.1"), Prunes: []Addr{mustAddr(t, "10.0.0.5")}},
			SPT:   []Addr{mustAddr(t, "10.0.0.1")},
		},
		{Group: mustAddr(t, "239.2.2.2"), SPT: []Addr{mustAddr(t, "10.0.0.9")}},
	}}
	assert.NoError(t, cfg.Validate())
}
