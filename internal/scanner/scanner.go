package scanner

import (
	"fmt"
	"os"
	"time"

	"github.com/Ragora/T2-EngineScraper/internal/config"
	"github.com/Ragora/T2-EngineScraper/pkg/types"
)

// Positional field layout per category, after description splicing. The
// argument order is fixed per registration pattern across the corpus.
const (
	globalFunctionNameField    = 0
	globalFunctionAddressField = 1
	globalFunctionMinField     = 3
	globalFunctionMaxField     = 4

	typeMethodTypeField    = 1
	typeMethodNameField    = 2
	typeMethodAddressField = 3
	typeMethodMinField     = 5
	typeMethodMaxField     = 6

	globalValueNameField    = 0
	globalValueTypeField    = 1
	globalValueAddressField = 2

	propertyNameField    = 0
	propertyAddressField = 2
)

// Scanner runs the full extraction pipeline over one decompiled dump
type Scanner struct {
	tables  *config.Tables
	matcher *Matcher
}

// New creates a scanner over a set of injected lookup tables
func New(tables *config.Tables) (*Scanner, error) {
	matcher, err := NewMatcher(tables.Registry)
	if err != nil {
		return nil, fmt.Errorf("failed to build matcher: %w", err)
	}
	return &Scanner{tables: tables, matcher: matcher}, nil
}

// ScrapeFile reads a dump file and scrapes it. A missing or unreadable
// input is fatal; there is nothing to do without the corpus.
func (s *Scanner) ScrapeFile(path string) (*types.Catalog, *types.ScanStats, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read dump %s: %w", path, err)
	}
	return s.Scrape(raw)
}

// Scrape runs the pipeline over raw dump bytes: normalize and skip the
// declaration prefix, neutralize in-literal semicolons in place, then scan
// the categories in fixed order. Failures in one category never abort
// another.
func (s *Scanner) Scrape(raw []byte) (*types.Catalog, *types.ScanStats, error) {
	stats := types.NewScanStats()

	buf := Normalize(raw, s.tables.SkipLines)
	NeutralizeLiterals(buf)

	catalog := types.NewCatalog()
	s.scanGlobalFunctions(buf, catalog, stats)
	s.scanTypeMethods(buf, catalog, stats)
	s.scanGlobalValues(buf, catalog, stats)
	s.scanDatablockProperties(buf, catalog, stats)

	stats.Duration = time.Since(stats.StartTime)
	return catalog, stats, nil
}

// scanGlobalFunctions extracts global callables:
// sub_XXXXXX("name", &sub_CB, "description", min, max);
func (s *Scanner) scanGlobalFunctions(buf []byte, catalog *types.Catalog, stats *types.ScanStats) {
	for _, match := range s.matcher.Matches(buf, types.CategoryGlobalFunction) {
		stats.Matches[types.CategoryGlobalFunction]++

		args := DecomposeCall(string(buf[match.Start:match.End]))
		minArgs, err := ExtractInt(args.Fields, globalFunctionMinField)
		if err != nil {
			stats.Discarded[types.CategoryGlobalFunction]++
			continue
		}
		maxArgs, err := ExtractInt(args.Fields, globalFunctionMaxField)
		if err != nil {
			stats.Discarded[types.CategoryGlobalFunction]++
			continue
		}

		fn := types.Function{
			EngineComponent: types.EngineComponent{
				Name:        ExtractName(args.Fields, globalFunctionNameField),
				Address:     ExtractAddress(args.Fields, globalFunctionAddressField),
				Description: args.Description,
			},
			MinArgs: minArgs,
			MaxArgs: maxArgs,
		}
		if fn.Validate() != nil {
			stats.Discarded[types.CategoryGlobalFunction]++
			continue
		}
		catalog.AddGlobalFunction(fn)
	}
}

// scanTypeMethods extracts type-bound methods:
// sub_XXXXXX(&unk, "Type", "name", &sub_CB, "description", min, max);
func (s *Scanner) scanTypeMethods(buf []byte, catalog *types.Catalog, stats *types.ScanStats) {
	for _, match := range s.matcher.Matches(buf, types.CategoryTypeMethod) {
		stats.Matches[types.CategoryTypeMethod]++

		args := DecomposeCall(string(buf[match.Start:match.End]))
		minArgs, err := ExtractInt(args.Fields, typeMethodMinField)
		if err != nil {
			stats.Discarded[types.CategoryTypeMethod]++
			continue
		}
		maxArgs, err := ExtractInt(args.Fields, typeMethodMaxField)
		if err != nil {
			stats.Discarded[types.CategoryTypeMethod]++
			continue
		}

		fn := types.Function{
			EngineComponent: types.EngineComponent{
				Name:        ExtractName(args.Fields, typeMethodNameField),
				Address:     ExtractAddress(args.Fields, typeMethodAddressField),
				TypeName:    ExtractName(args.Fields, typeMethodTypeField),
				Description: args.Description,
			},
			MinArgs: minArgs,
			MaxArgs: maxArgs,
		}
		if fn.Validate() != nil {
			stats.Discarded[types.CategoryTypeMethod]++
			continue
		}
		catalog.AddTypeMethod(fn)
	}
}

// scanGlobalValues extracts runtime variables:
// sub_XXXXXX("name", typeCode, &dword_ADDR); (no description field)
func (s *Scanner) scanGlobalValues(buf []byte, catalog *types.Catalog, stats *types.ScanStats) {
	for _, match := range s.matcher.Matches(buf, types.CategoryGlobalValue) {
		stats.Matches[types.CategoryGlobalValue]++

		fields := SplitArguments(string(buf[match.Start:match.End]))
		typeCode, err := ExtractInt(fields, globalValueTypeField)
		if err != nil {
			stats.Discarded[types.CategoryGlobalValue]++
			continue
		}

		catalog.AddGlobalValue(types.GlobalVariable{
			EngineComponent: types.EngineComponent{
				Name:    ExtractName(fields, globalValueNameField),
				Address: ExtractAddress(fields, globalValueAddressField),
			},
			TypeCode: typeCode,
		})
	}
}

// scanDatablockProperties extracts datablock fields and assigns each to
// its structurally resolved owning type:
// sub_XXXXXX("name", n, &unk_ADDR);
func (s *Scanner) scanDatablockProperties(buf []byte, catalog *types.Catalog, stats *types.ScanStats) {
	resolver := NewOwnerResolver(s.tables.DatablockTypes)

	for _, match := range s.matcher.Matches(buf, types.CategoryDatablockProperty) {
		stats.Matches[types.CategoryDatablockProperty]++

		owner, err := resolver.Resolve(buf, match.Start)
		if err != nil {
			stats.Discarded[types.CategoryDatablockProperty]++
			continue
		}

		fields := SplitArguments(string(buf[match.Start:match.End]))
		catalog.AddDatablockProperty(owner, types.Property{
			EngineComponent: types.EngineComponent{
				Name:     ExtractName(fields, propertyNameField),
				Address:  ExtractAddress(fields, propertyAddressField),
				TypeName: types.UnresolvedPropertyType,
			},
		})
	}

	stats.UnresolvedOwners = resolver.Unresolved()
}
