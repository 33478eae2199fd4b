package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/Ragora/T2-EngineScraper/pkg/types"
)

// Tables bundles the injected configuration the scraper core and its
// collaborators consume. Instances are built by Default or Load and are
// not mutated afterwards.
type Tables struct {
	// SkipLines is the count of leading lines dropped before matching.
	SkipLines int

	// Registry maps each entity category to the addresses of its known
	// registration subroutines.
	Registry map[types.Category][]string

	// DatablockTypes maps registering-subroutine addresses to datablock
	// type names for owner resolution.
	DatablockTypes map[string]string

	// PrimitiveTypes labels global value type codes, indexed by code.
	PrimitiveTypes []string

	// Inheritance maps type names to ordered ancestor chains.
	Inheritance map[string][]string
}

// fileConfig is the HCL representation of an override file. Every field is
// optional; absent fields keep their defaults.
type fileConfig struct {
	SkipLines              *int                `hcl:"skip_lines,optional"`
	GlobalFunctionSubs     []string            `hcl:"global_function_registry,optional"`
	TypeMethodSubs         []string            `hcl:"type_method_registry,optional"`
	DatablockPropertySubs  []string            `hcl:"datablock_property_registry,optional"`
	GlobalValueSubs        []string            `hcl:"global_value_registry,optional"`
	DatablockTypes         map[string]string   `hcl:"datablock_types,optional"`
	ExtraDatablockTypes    map[string]string   `hcl:"extra_datablock_types,optional"`
	PrimitiveTypes         []string            `hcl:"primitive_types,optional"`
	Inheritance            map[string][]string `hcl:"inheritance,optional"`
}

// Default returns the compiled-in tables for the Tribes 2 corpus
func Default() *Tables {
	return &Tables{
		SkipLines: DefaultSkipLines,
		Registry: map[types.Category][]string{
			types.CategoryGlobalFunction:    cloneSlice(defaultGlobalFunctionSubs),
			types.CategoryTypeMethod:        cloneSlice(defaultTypeMethodSubs),
			types.CategoryGlobalValue:       cloneSlice(defaultGlobalValueSubs),
			types.CategoryDatablockProperty: cloneSlice(defaultDatablockPropertySubs),
		},
		DatablockTypes: cloneMap(defaultDatablockTypes),
		PrimitiveTypes: cloneSlice(defaultPrimitiveTypes),
		Inheritance:    cloneChains(defaultInheritance),
	}
}

// Load reads an HCL override file and merges it over the defaults. A
// missing path is fatal; tables referenced by a scrape run must exist.
func Load(path string) (*Tables, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not accessible: %w", err)
	}

	var fc fileConfig
	if err := hclsimple.DecodeFile(path, nil, &fc); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	tables := Default()
	fc.applyTo(tables)
	return tables, nil
}

// applyTo overlays the file values onto a default table set
func (fc *fileConfig) applyTo(t *Tables) {
	if fc.SkipLines != nil {
		t.SkipLines = *fc.SkipLines
	}
	if len(fc.GlobalFunctionSubs) > 0 {
		t.Registry[types.CategoryGlobalFunction] = fc.GlobalFunctionSubs
	}
	if len(fc.TypeMethodSubs) > 0 {
		t.Registry[types.CategoryTypeMethod] = fc.TypeMethodSubs
	}
	if len(fc.DatablockPropertySubs) > 0 {
		t.Registry[types.CategoryDatablockProperty] = fc.DatablockPropertySubs
	}
	if len(fc.GlobalValueSubs) > 0 {
		t.Registry[types.CategoryGlobalValue] = fc.GlobalValueSubs
	}
	if len(fc.DatablockTypes) > 0 {
		// Full replacement; use extra_datablock_types to extend instead.
		t.DatablockTypes = fc.DatablockTypes
	}
	for addr, name := range fc.ExtraDatablockTypes {
		t.DatablockTypes[addr] = name
	}
	if len(fc.PrimitiveTypes) > 0 {
		t.PrimitiveTypes = fc.PrimitiveTypes
	}
	for name, chain := range fc.Inheritance {
		t.Inheritance[name] = chain
	}
}

// PrimitiveLabel returns the label for a global value type code. Codes
// outside the table are Unknown.
func (t *Tables) PrimitiveLabel(code int) string {
	if code < 0 || code >= len(t.PrimitiveTypes) {
		return "Unknown"
	}
	return t.PrimitiveTypes[code]
}

func cloneSlice(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneChains(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = cloneSlice(v)
	}
	return out
}
