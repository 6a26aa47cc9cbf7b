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

// Package version reports the name and version of the application. The
// version number is set by the linker when a release is built. Otherwise the
// version is taken from the VCS information stamped into the binary by the Go
// toolchain.
package version

import (
	"fmt"
	"runtime/debug"
)

// The name to use when referring to the application
const ApplicationName = "Gopher64"

// set by the linker for release builds
var number string

// Info describes the build of the application.
type Info struct {
	// the release number. "unreleased" if the project was built from a VCS
	// checkout and "local" if there is no VCS information at all
	Number string

	// the VCS revision. suffixed with "+dirty" if the source had been modified
	// but not committed
	Revision string

	// version of the Go toolchain used to build the application
	GoVersion string

	// the build is a numbered release
	Release bool
}

func (inf Info) String() string {
	if inf.Release {
		return fmt.Sprintf("%s %s", ApplicationName, inf.Number)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, inf.Number, inf.Revision)
}

var build Info

func init() {
	info, _ := debug.ReadBuildInfo()
	build = fromBuildInfo(info, number)
}

// Build returns information about the build of the application.
func Build() Info {
	return build
}

// Version returns the version string, the revision string and whether this is
// a numbered release. If release is true then the revision information should
// be used sparingly.
func Version() (string, string, bool) {
	return build.Number, build.Revision, build.Release
}

func fromBuildInfo(info *debug.BuildInfo, number string) Info {
	var inf Info
	var vcs bool
	var modified bool

	if info != nil {
		inf.GoVersion = info.GoVersion
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				inf.Revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
	}

	if inf.Revision == "" {
		inf.Revision = "no revision information"
	} else if modified {
		inf.Revision += "+dirty"
	}

	switch {
	case number != "":
		inf.Number = number
		inf.Release = true
	case vcs:
		inf.Number = "unreleased"
	default:
		inf.Number = "local"
	}

	return inf
}
