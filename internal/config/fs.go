// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import "github.com/spf13/afero"

// FsFactory is a function that returns an afero filesystem.
// Local config files and results files are accessed through it.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}
