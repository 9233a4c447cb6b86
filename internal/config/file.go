// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

var (
	// ErrParseFile is returned when a config file cannot be decoded.
	ErrParseFile = errors.New("failed to parse config file")
	// ErrFileTimeout is returned when the timeout in a config file is not a duration.
	ErrFileTimeout = errors.New("invalid timeout in config file")
)

// File is the on-disk form of a configuration. Unset fields leave the
// corresponding Config value alone.
type File struct {
	Exec         *string   `yaml:"exec"          hcl:"exec,optional"`
	Args         *[]string `yaml:"args"          hcl:"args,optional"`
	Times        *int      `yaml:"times"         hcl:"times,optional"`
	Threads      *int      `yaml:"threads"       hcl:"threads,optional"`
	Silent       *bool     `yaml:"silent"        hcl:"silent,optional"`
	Score        *bool     `yaml:"score"         hcl:"score,optional"`
	Progress     *bool     `yaml:"progress"      hcl:"progress,optional"`
	Timeout      *string   `yaml:"timeout"       hcl:"timeout,optional"`
	Timing       *bool     `yaml:"timing"        hcl:"timing,optional"`
	Out          *string   `yaml:"out"           hcl:"out,optional"`
	OTLPEndpoint *string   `yaml:"otlp_endpoint" hcl:"otlp_endpoint,optional"`

	KillOnSecondInterrupt *bool `yaml:"kill_on_second_interrupt" hcl:"kill_on_second_interrupt,optional"`
}

// ParseFile decodes data as HCL when name ends in .hcl and as YAML otherwise.
func ParseFile(name string, data []byte) (*File, error) {
	if strings.EqualFold(filepath.Ext(name), ".hcl") {
		return parseHCL(name, data)
	}

	return parseYAML(data)
}

func parseYAML(data []byte) (*File, error) {
	f := &File{}

	if err := yaml.UnmarshalWithOptions(data, f, yaml.DisallowUnknownField()); err != nil {
		return nil, errors.Join(ErrParseFile, err)
	}

	return f, nil
}

func parseHCL(name string, data []byte) (*File, error) {
	body, diags := hclsyntax.ParseConfig(data, name, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, errors.Join(ErrParseFile, diags)
	}

	f := &File{}

	if diags := gohcl.DecodeBody(body.Body, evalContext(), f); diags.HasErrors() {
		return nil, errors.Join(ErrParseFile, diags)
	}

	return f, nil
}

// evalContext exposes the process environment as env.NAME.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !hclsyntax.ValidIdentifier(k) {
			continue
		}

		vars[k] = cty.StringVal(v)
	}

	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": env,
		},
	}
}

// Apply copies every set field of f onto c.
func (f *File) Apply(c *Config) error {
	if f == nil {
		return nil
	}

	setIf(&c.Exec, f.Exec)
	setIf(&c.Args, f.Args)
	setIf(&c.Times, f.Times)
	setIf(&c.Threads, f.Threads)
	setIf(&c.Silent, f.Silent)
	setIf(&c.Score, f.Score)
	setIf(&c.Progress, f.Progress)
	setIf(&c.Timing, f.Timing)
	setIf(&c.Out, f.Out)
	setIf(&c.OTLPEndpoint, f.OTLPEndpoint)
	setIf(&c.KillOnSecondInterrupt, f.KillOnSecondInterrupt)

	if f.Timeout != nil {
		d, err := time.ParseDuration(*f.Timeout)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrFileTimeout, *f.Timeout, err)
		}

		c.Timeout = d
	}

	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
