// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/spf13/afero"
)

// ErrGetConfigFile is returned when a config file cannot be retrieved.
var ErrGetConfigFile = errors.New("failed to get config file")

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // scheme, host, and path
)

// Load fetches src and decodes it into a File.
func Load(ctx context.Context, src string) (*File, error) {
	data, name, err := Fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	return ParseFile(name, data)
}

// Fetch returns the content of src and the file name it was read from.
// Existing local paths are read through FsFactory, everything else is
// handed to go-getter.
func Fetch(ctx context.Context, src string) ([]byte, string, error) {
	if src == "" {
		return nil, "", ErrGetConfigFile
	}

	fs := FsFactory()
	if ok, _ := afero.Exists(fs, src); ok {
		data, err := afero.ReadFile(fs, src)
		if err != nil {
			return nil, "", errors.Join(ErrGetConfigFile, err)
		}

		return data, filepath.Base(src), nil
	}

	return getURL(ctx, src)
}

// getURL downloads src with go-getter. A source with a //subdir part is
// fetched as a directory and the file read from it; anything else is fetched
// as a single file.
func getURL(ctx context.Context, src string) ([]byte, string, error) {
	tmpDir, err := os.MkdirTemp("", "tester-config-*")
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	pwd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	req := &getter.Request{Src: src, Pwd: pwd, GetMode: getter.ModeFile}

	name := fileNameOf(src)

	dirURL, subFile := splitFileNameFromGetterURL(src)

	switch {
	case dirURL != "":
		req.Src, req.GetMode, name = dirURL, getter.ModeDir, subFile
		req.Dst = filepath.Join(tmpDir, "src")
	case name != "":
		req.Dst = filepath.Join(tmpDir, name)
	default:
		return nil, "", fmt.Errorf("%w: no file name in %s", ErrGetConfigFile, src)
	}

	client := &getter.Client{DisableSymlinks: true}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	target := res.Dst
	if req.GetMode == getter.ModeDir {
		target = filepath.Join(res.Dst, name)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	return data, name, nil
}

// fileNameOf returns the last path element of a getter source, without any
// query, or "" if there is none.
func fileNameOf(src string) string {
	if _, rest, ok := strings.Cut(src, "::"); ok {
		src = rest
	}

	src, _, _ = strings.Cut(src, goGetterRefSeparator)

	name := path.Base(src)
	if name == "." || name == "/" || strings.HasSuffix(src, "/") || strings.HasSuffix(name, ":") {
		return ""
	}

	return name
}

// splitFileNameFromGetterURL returns the getter URL of the directory holding
// the file, and the file name. Both are empty if url has no subpath.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]

	if path, query, ok := strings.Cut(last, goGetterRefSeparator); ok {
		ref = query
		last = path
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := filepath.Base(last)

	if dir := filepath.Dir(last); dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	newURL := strings.Join(parts, goGetterPathSeparator)

	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}
