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

package hardware

import (
	"errors"
	"fmt"
)

// ConfigError is returned when a setting cannot be applied. The ensemble is
// left in its previous state.
type ConfigError struct {
	Setting string
	Err     error
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("hardware: %s: %v", e.Setting, e.Err)
}

func (e ConfigError) Unwrap() error {
	return e.Err
}

// Sentinel errors returned by the Ensemble.
var (
	ErrNoDrive   = errors.New("hardware: drive is not available")
	ErrNoProgram = errors.New("hardware: no program to start")
)
