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
	"github.com/stretchr/testify/require"
)

// TestInversePackScenarioE covers spec.md §8 Scenario E: the inverse
// of Scenario A.
func TestInversePackScenarioE(t *testing.T) {
	group := mustAddr(t, "239.1.1.1")
	s1 := mustAddr(t, "10.0.0.1")
	s2 := mustAddr(t, "10.0.0.2")

	cfg := JPConfig{Groups: []GroupConfig{
		{Group: group, SPT: []Addr{s1, s2}},
	}}

	u := InversePack(cfg)
	require.Len(t, u, 1)
	require.Len(t, u[0].Groups, 1)

	ge := u[0].Groups[0]
	assert.Empty(t, ge.Joins)
	assert.Equal(t, []Source{sptRecord(s1), sptRecord(s2)}, ge.Prunes)

	report := VerifyInverse(cfg, u)
	assert.True(t, report.OK(), "%+v", report)
}

// TestInversePackRPTOnlyEmptySPT covers the fix documented in
// inverse.go: a group with an RPT but no SPT joins must still carry
// the RP's Prune(*,G) record, not be dropped.
func TestInversePackRPTOnlyEmptySPT(t *testing.T) {
	group := mustAddr(t, "239.5.5.5")
	rp := mustAddr(t, "1.1.1.1")

	cfg := JPConfig{Groups: []GroupConfig{
		{Group: group, RPT: &RPT{RP: rp}},
	}}

	u := InversePack(cfg)
	require.Len(t, u, 1)
	require.Len(t, u[0].Groups, 1)

	ge := u[0].Groups[0]
	assert.Empty(t, ge.Joins)
	require.Len(t, ge.Prunes, 1)
	assert.Equal(t, rpRecord(rp), ge.Prunes[0])
}

// TestInversePackRPLeadsList checks that when an RPT and SPT joins
// both exist, the RP record leads the pruned-source list in whichever
// entry it lands in.
func TestInversePackRPLeadsList(t *testing.T) {
	group := mustAddr(t, "239.6.6.6")
	rp := mustAddr(t, "2.2.2.2")
	s1 := mustAddr(t, "10.1.1.1")

	cfg := JPConfig{Groups: []GroupConfig{
		{Group: group, RPT: &RPT{RP: rp}, SPT: []Addr{s1}},
	}}

	u := InversePack(cfg)
	require.Len(t, u, 1)
	ge := u[0].Groups[0]
	require.Len(t, ge.Prunes, 2)
	assert.Equal(t, rpRecord(rp), ge.Prunes[0])
	assert.Equal(t, sptRecord(s1), ge.Prunes[1])
}

// TestInversePackOmitsEmptyGroup mirrors the forward packer's
// boundary: a group with neither RPT nor SPT contributes nothing.
func TestInversePackOmitsEmptyGroup(t *testing.T) {
	cfg := JPConfig{Groups: []GroupConfig{
		{Group: mustAddr(t, "239.7.7.7")},
	}}
	u := InversePack(cfg)
	assert.Empty(t, u)
}
