// This file is part of Gopher64.
//
// Gopher64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher64.  If not, see <https://www.gnu.org/licenses/>.

package version

import (
	"runtime/debug"
	"testing"

	"github.com/jetsetilly/gopher64/test"
)

func TestFromBuildInfo(t *testing.T) {
	inf := fromBuildInfo(nil, "")
	test.ExpectEquality(t, inf.Number, "local")
	test.ExpectEquality(t, inf.Revision, "no revision information")
	test.ExpectEquality(t, inf.Release, false)

	bi := &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	inf = fromBuildInfo(bi, "")
	test.ExpectEquality(t, inf.Number, "unreleased")
	test.ExpectEquality(t, inf.Revision, "abc123+dirty")
	test.ExpectEquality(t, inf.GoVersion, "go1.26.0")
	test.ExpectEquality(t, inf.String(), "Gopher64 unreleased (abc123+dirty)")

	inf = fromBuildInfo(bi, "v0.1.0")
	test.ExpectEquality(t, inf.Release, true)
	test.ExpectEquality(t, inf.String(), "Gopher64 v0.1.0")
}
