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

// Package diskimage reads and writes D64 disk images. A D64 file is a list of
// 256 byte sectors, optionally followed by one error code per sector. The
// 1541 does not see sectors, it sees the GCR encoded bit stream on each
// track, so the image is converted to GCR a track at a time when the drive
// asks for it.
//
// Tracks that have been written to by the drive are decoded back into
// sectors. Sectors that cannot be found in the written track are left
// unchanged.
package diskimage
