// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package rig

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/controlrig/internal/ctxlog"
)

// hclFile is the top-level structure of a rig file for decoding.
type hclFile struct {
	Settings *Settings  `hcl:"rig,block"`
	Nodes    []*hclNode `hcl:"node,block"`
}

type hclNode struct {
	Kind   string    `hcl:"kind,label"`
	Name   string    `hcl:"name,label"`
	Inputs []string  `hcl:"inputs,optional"`
	Params cty.Value `hcl:"params,optional"`
}

// Load parses a single .hcl file or every .hcl file under a directory into
// a consolidated, validated Rig.
func Load(ctx context.Context, path string) (*Rig, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading rig from path.", "path", path)

	files, err := findRigFiles(path)
	if err != nil {
		return nil, fmt.Errorf("failed to find rig files in %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl rig files found under %s", path)
	}

	rig := &Rig{
		Settings: Settings{Ticks: defaultTicks, TickInterval: defaultTickInterval},
	}
	parser := hclparse.NewParser()
	settingsFile := ""
	for _, file := range files {
		parsed, err := parseRigFile(file, parser)
		if err != nil {
			return nil, err
		}
		if parsed.Settings != nil {
			if settingsFile != "" {
				return nil, fmt.Errorf("rig settings declared twice, in %s and %s", settingsFile, file)
			}
			settingsFile = file
			if parsed.Settings.Ticks != 0 {
				rig.Settings.Ticks = parsed.Settings.Ticks
			}
			if parsed.Settings.TickInterval != 0 {
				rig.Settings.TickInterval = parsed.Settings.TickInterval
			}
		}
		for _, n := range parsed.Nodes {
			params, err := newParams(n.Params)
			if err != nil {
				return nil, fmt.Errorf("node %q in %s: %w", n.Name, file, err)
			}
			rig.Nodes = append(rig.Nodes, &Node{
				Kind:   n.Kind,
				Name:   n.Name,
				Inputs: n.Inputs,
				Params: params,
				File:   file,
			})
		}
	}

	if err := rig.validate(); err != nil {
		return nil, err
	}
	logger.Debug("Rig loaded.", "files", len(files), "nodes", len(rig.Nodes))
	return rig, nil
}

// parseRigFile parses one HCL file into its raw decoded form.
func parseRigFile(path string, parser *hclparse.Parser) (*hclFile, error) {
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	var parsed hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	return &parsed, nil
}

// findRigFiles accepts a file path directly or walks a directory for .hcl
// files. The result is sorted so loads are reproducible.
func findRigFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".hcl") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
