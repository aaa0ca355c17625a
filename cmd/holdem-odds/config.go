package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// fileConfig is the optional HCL configuration file accepted via --config,
// letting a shell script pin division/workers without repeating flags on
// every invocation. Grounded on internal/server/config.go's
// ServerConfig/LoadServerConfig pattern (gohcl struct tags, missing file
// falls back to defaults, zero values in the file don't stomp defaults).
type fileConfig struct {
	Odds oddsSettings `hcl:"odds,block"`
}

type oddsSettings struct {
	Division int `hcl:"division,optional"`
	Workers  int `hcl:"workers,optional"`
}

func defaultFileConfig() *fileConfig {
	return &fileConfig{Odds: oddsSettings{Division: 0, Workers: 0}}
}

// loadFileConfig reads filename as HCL. A missing file is not an error —
// it returns the zero-valued defaults, matching LoadServerConfig's
// "file not found means use defaults" behavior.
func loadFileConfig(filename string) (*fileConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return defaultFileConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	return &cfg, nil
}
