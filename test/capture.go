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

package test

import (
	"strings"
	"sync"
)

// Capture is an io.Writer that keeps everything written to it. It is safe to
// write to from any goroutine, which is useful when the output is produced by
// the emulation and not the test.
type Capture struct {
	crit   sync.Mutex
	buffer strings.Builder
}

// Write implements the io.Writer interface.
func (c *Capture) Write(p []byte) (n int, err error) {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.buffer.Write(p)
}

// Clear discards everything written so far.
func (c *Capture) Clear() {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.buffer.Reset()
}

// Compare returns true if the output so far is exactly s.
func (c *Capture) Compare(s string) bool {
	return c.String() == s
}

// Lines returns the output split into lines. The newline of the last line is
// not required and an empty output returns no lines.
func (c *Capture) Lines() []string {
	s := strings.TrimSuffix(c.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// String implements the fmt.Stringer interface.
func (c *Capture) String() string {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.buffer.String()
}
