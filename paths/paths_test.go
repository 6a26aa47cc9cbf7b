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

//go:build !release

package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopher64/paths"
	"github.com/jetsetilly/gopher64/test"
)

func TestPaths(t *testing.T) {
	t.Chdir(t.TempDir())

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".gopher64", "foo", "bar", "baz"))

	// directory has been created
	_, err = os.Stat(filepath.Join(".gopher64", "foo", "bar"))
	test.ExpectSuccess(t, err)

	pth, err = paths.ResourcePath("", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".gopher64", "baz"))

	pth, err = paths.ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".gopher64")
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("audio", "game", "wav")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "audio_game_"))
	test.ExpectSuccess(t, strings.HasSuffix(fn, ".wav"))

	fn = paths.UniqueFilename("audio", "", "wav")
	test.ExpectSuccess(t, !strings.Contains(fn, "__"))
}
