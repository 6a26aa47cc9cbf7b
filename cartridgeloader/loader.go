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

package cartridgeloader

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/jetsetilly/gopher64/hardware/memory"
)

// Loader is used to specify the cartridge to use when attaching to the C64.
type Loader struct {
	// filename of cartridge to load.
	Filename string

	// "AUTO", "8K", "16K", "ULTIMAX" or "CRT". the empty string is the same
	// as "AUTO"
	Mapping string

	// expected hash of the loaded cartridge. empty string indicates that the
	// hash is unknown and need not be validated. after a load operation the
	// value will be the hash of the loaded data
	Hash string

	// copy of the loaded data
	Data []byte
}

// FileExtensions is the list of file extensions that are recognised by the
// cartridgeloader package.
var FileExtensions = [...]string{".CRT", ".BIN", ".ROM", ".8K", ".16K", ".ULTIMAX"}

// ErrHash is returned by Load() when the data does not match the expected
// hash.
var ErrHash = errors.New("cartridgeloader: unexpected hash value")

// NewLoader is the preferred method of initialisation for the Loader type.
//
// The mapping argument will be used to set the Mapping field, unless the
// argument is either "AUTO" or the empty string. In which case the file
// extension is used to set the field.
//
// Alphabetic characters in file extensions can be in upper or lower case or a
// mixture of both.
func NewLoader(filename string, mapping string) Loader {
	cl := Loader{
		Filename: filename,
		Mapping:  "AUTO",
	}

	mapping = strings.TrimSpace(strings.ToUpper(mapping))
	if mapping != "AUTO" && mapping != "" {
		cl.Mapping = mapping
	} else {
		ext := strings.ToUpper(path.Ext(filename))
		switch ext {
		case ".CRT":
			cl.Mapping = "CRT"
		case ".8K", ".16K", ".ULTIMAX":
			cl.Mapping = ext[1:]
		}
	}

	return cl
}

// ShortName returns a shortened version of the Loader filename.
func (cl Loader) ShortName() string {
	shortCartName := path.Base(cl.Filename)
	shortCartName = strings.TrimSuffix(shortCartName, path.Ext(cl.Filename))
	return shortCartName
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load the cartridge data. Loader filenames with a valid scheme will use that
// method to load the data. Currently supported schemes are HTTP and local
// files.
func (cl *Loader) Load() error {
	if len(cl.Data) > 0 {
		return nil
	}

	scheme := "file"

	url, err := url.Parse(cl.Filename)
	if err == nil {
		scheme = url.Scheme
	}

	switch scheme {
	case "http", "https":
		resp, err := http.Get(cl.Filename)
		if err != nil {
			return fmt.Errorf("cartridgeloader: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("cartridgeloader: %s", resp.Status)
		}

		cl.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("cartridgeloader: %w", err)
		}

	case "file", "":
		cl.Data, err = os.ReadFile(cl.Filename)
		if err != nil {
			return fmt.Errorf("cartridgeloader: %w", err)
		}

	default:
		return fmt.Errorf("cartridgeloader: unsupported URL scheme (%s)", scheme)
	}

	hash := fmt.Sprintf("%x", sha1.Sum(cl.Data))

	// check for hash consistency
	if cl.Hash != "" && cl.Hash != hash {
		cl.Data = nil
		return ErrHash
	}

	cl.Hash = hash

	return nil
}

// Cartridge creates the cartridge from the loaded data.
func (cl Loader) Cartridge() (memory.Cartridge, error) {
	if !cl.HasLoaded() {
		return nil, fmt.Errorf("cartridgeloader: %s: not loaded", cl.Filename)
	}

	if cl.Mapping == "CRT" || isCRT(cl.Data) {
		return parseCRT(cl.Data)
	}

	var kind memory.CartridgeKind
	switch strings.ToUpper(cl.Mapping) {
	case "AUTO", "":
		kind = memory.AutoCartridge
	case "8K":
		kind = memory.Normal8K
	case "16K":
		kind = memory.Normal16K
	case "ULTIMAX":
		kind = memory.Ultimax
	default:
		return nil, fmt.Errorf("cartridgeloader: unsupported mapping (%s)", cl.Mapping)
	}

	cart, err := memory.NewCartridge(cl.ShortName(), cl.Data, kind)
	if err != nil {
		return nil, fmt.Errorf("cartridgeloader: %w", err)
	}
	return cart, nil
}
