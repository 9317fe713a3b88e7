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

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestVerifyAcceptsRoundTrip(t *testing.T) {
	cfg := JPConfig{Groups: []GroupConfig{
		{
			Group: mustAddr(t, "239.1.1.1"),
			RPT:   &RPT{RP: mustAddr(t, "1.1.1.1"), Prunes: []Addr{mustAddr(t, "10.0.0.5")}},
			SPT:   []Addr{mustAddr(t, "10.0.0.1")},
		},
		{Group: mustAddr(t, "239.2.2.2"), SPT: []Addr{mustAddr(t, "10.0.0.9")}},
	}}

	report := Verify(cfg, Pack(cfg))
	assert.True(t, report.OK(), "%+v", report)
}

func TestVerifyInverseAcceptsRoundTrip(t *testing.T) {
	cfg := JPConfig{Groups: []GroupConfig{
		{Group: mustAddr(t, "239.1.1.1"), RPT: &RPT{RP: mustAddr(t, "1.1.1.1")}},
		{Group: mustAddr(t, "239.2.2.2"), SPT: []Addr{mustAddr(t, "10.0.0.9")}},
	}}

	report := VerifyInverse(cfg, InversePack(cfg))
	assert.True(t, report.OK(), "%+v", report)
}

func TestVerifyReportsMissingGroup(t *testing.T) {
	cfg := JPConfig{Groups: []GroupConfig{
		{Group: mustAddr(t, "239.1.1.1"), SPT: []Addr{mustAddr(t, "10.0.0.1")}},
	}}
	report := Verify(cfg, nil)
	assert.False(t, report.OK())
	assert.Contains(t, report.MissingGroups, mustAddr(t, "239.1.1.1"))
}

func TestVerifyReportsExtraSource(t *testing.T) {
	cfg := JPConfig{Groups: []GroupConfig{
		{Group: mustAddr(t, "239.1.1.1"), SPT: []Addr{mustAddr(t, "10.0.0.1")}},
	}}
	u := Pack(cfg)
	u[0].Groups[0].Joins = append(u[0].Groups[0].Joins, sptRecord(mustAddr(t, "10.0.0.2")))

	report := Verify(cfg, u)
	assert.False(t, report.OK())
	if assert.Len(t, report.GroupMismatches, 1) {
		assert.Contains(t, report.GroupMismatches[0].ExtraSPT, mustAddr(t, "10.0.0.2"))
	}
}

// TestVerifyReportStructuralDiff checks the reported GroupMismatch
// against an expected value field-by-field, catching regressions a
// single boolean assertion would miss.
func TestVerifyReportStructuralDiff(t *testing.T) {
	cfg := JPConfig{Groups: []GroupConfig{
		{
			Group: mustAddr(t, "239.1.1.1"),
			RPT:   &RPT{RP: mustAddr(t, "1.1.1.1"), Prunes: []Addr{mustAddr(t, "10.0.0.5")}},
		},
	}}
	u := Pack(cfg)
	u[0].Groups[0].Joins[0] = rpRecord(mustAddr(t, "9.9.9.9"))

	report := Verify(cfg, u)
	if len(report.GroupMismatches) != 1 {
		t.Fatalf("expected exactly one group mismatch, got %d", len(report.GroupMismatches))
	}

	want := GroupMismatch{
		Group:      mustAddr(t, "239.1.1.1"),
		RPMismatch: true,
		WantRP:     mustAddr(t, "1.1.1.1"),
		GotRP:      mustAddr(t, "9.9.9.9"),
	}
	if diff := cmp.Diff(want, report.GroupMismatches[0]); diff != "" {
		t.Errorf("group mismatch report differs (-want +got):\n%s", diff)
	}
}

func TestVerifyReportsRPTPruneWithoutRP(t *testing.T) {
	cfg := JPConfig{Groups: []GroupConfig{
		{Group: mustAddr(t, "239.1.1.1"), SPT: []Addr{mustAddr(t, "10.0.0.1")}},
	}}
	u := Pack(cfg)
	u[0].Groups[0].Prunes = append(u[0].Groups[0].Prunes, rptPruneRecord(mustAddr(t, "10.0.0.9")))

	report := Verify(cfg, u)
	assert.False(t, report.OK())
	assert.NotEmpty(t, report.MalformedRecords)
}
