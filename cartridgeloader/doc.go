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

// Package cartridgeloader is used to specify the cartridge that is to be
// attached to the expansion port of the emulated C64.
//
// When the cartridge is ready to be loaded into the emulator, the Load()
// function should be used. The Load() function handles loading of data from
// different sources. Currently local files and data over HTTP are supported.
//
// As well as the filename, the Loader type allows the cartridge mapping to be
// specified, if required.
//
// The simplest instance of the Loader type:
//
//	cl := cartridgeloader.Loader{
//		Filename: "carts/gorf.crt",
//	}
//
// It is preferred however that the NewLoader() function is used. The
// NewLoader() function will set the mapping field automatically according to
// the filename extension.
//
// Once loaded, the Cartridge() function creates the cartridge that is
// attached to the emulation. CRT files carry their own mapping. Raw binary
// files are mapped according to the Mapping field, with "AUTO" choosing
// between an 8K and a 16K cartridge by the size of the data.
package cartridgeloader
