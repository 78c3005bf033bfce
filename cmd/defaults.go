// Copyright 2016 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"path/filepath"
	"runtime"

	"github.com/prysmaticlabs/prysm-slashing-protection/io/file"
)

// DefaultDataDir is the default data directory to use for the validator database.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := file.HomeDir()
	if home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Eth2Validators", "slashing-protection")
		case "windows":
			return filepath.Join(home, "AppData", "Local", "Eth2Validators", "slashing-protection")
		default:
			return filepath.Join(home, ".eth2validators", "slashing-protection")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}
