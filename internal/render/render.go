package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Ragora/T2-EngineScraper/internal/config"
	"github.com/Ragora/T2-EngineScraper/pkg/types"
)

const (
	defaultTitle = "Tribes 2 Engine Reference"

	globalFunctionHeading = "===== Global Methods (%d total) =====\r\n"
	arithmeticHeading     = "==== Arithmetic Methods (%d total) ====\r\n"
	audioHeading          = "==== Audio Methods (%d total) ====\r\n"
	functionTemplate      = "=== %s ===\r\nAddress in Executable: 0x%s\r\n\r\nDescription: %s\r\n\r\nMinimum Arguments: %d\r\n\r\nMaximum Arguments: %d\r\n"

	typeMethodHeading = "===== Type Methods (%d total methods, %d total types) =====\r\n"
	typeNameTemplate  = "==== %s ====\r\n%d total native methods\r\n\r\nInheritance: %s\r\n"

	globalValueHeading  = "===== Global Values (%d total): =====\r\n"
	globalValueTemplate = "=== %s ===\r\nType: %s\r\n\r\nAddress in Executable: 0x%s\r\n\r\n"

	datablockListHeading = "===== Datablocks (%d total) =====\r\n"
	datablockHeading     = "==== %s ====\r\nTotal Properties: %d\r\n\r\nInheritance: %s\r\n"
	propertyTemplate     = "=== %s ===\r\nOffset: %s\r\nType: %s\r\n"

	unknownInheritance = "<Unknown>"
)

// Renderer formats a finished catalog as a DokuWiki reference page. It
// never mutates the catalog; section ordering is made deterministic by
// sorting type and property names.
type Renderer struct {
	tables *config.Tables

	// Title is the top-level page heading.
	Title string
}

// New creates a renderer over the given lookup tables. The inheritance
// chains and primitive type labels come from the tables; everything else
// comes from the catalog being rendered.
func New(tables *config.Tables) *Renderer {
	return &Renderer{
		tables: tables,
		Title:  defaultTitle,
	}
}

// WritePage renders the full reference page for catalog to w.
func (r *Renderer) WritePage(w io.Writer, catalog *types.Catalog) error {
	p := &pageWriter{w: w}

	p.printf("====== %s ======\r\n\r\n", r.Title)

	r.writeGlobalFunctions(p, catalog)
	r.writeTypeMethods(p, catalog)
	r.writeGlobalValues(p, catalog)
	r.writeDatablocks(p, catalog)

	if p.err != nil {
		return fmt.Errorf("failed to render reference page: %w", p.err)
	}
	return nil
}

func (r *Renderer) writeGlobalFunctions(p *pageWriter, catalog *types.Catalog) {
	general, arithmetic, audio := partitionGlobalFunctions(catalog.GlobalFunctions)

	p.printf(globalFunctionHeading, catalog.GlobalFunctionCount())
	p.print("\r\n")
	for _, fn := range general {
		writeFunction(p, fn)
	}
	p.print("\r\n")

	p.printf(arithmeticHeading, len(arithmetic))
	p.print("\r\n")
	for _, fn := range arithmetic {
		writeFunction(p, fn)
	}
	p.print("\r\n")

	p.printf(audioHeading, len(audio))
	p.print("\r\n")
	for _, fn := range audio {
		writeFunction(p, fn)
	}
	p.print("\r\n")
}

func (r *Renderer) writeTypeMethods(p *pageWriter, catalog *types.Catalog) {
	typeNames := sortedKeys(catalog.TypeMethods)
	sectioned := make(map[string]bool, len(typeNames))
	for _, name := range typeNames {
		sectioned[name] = true
	}

	p.printf(typeMethodHeading, catalog.TypeMethodTotal(), len(typeNames))
	p.print("\r\n")

	for _, typeName := range typeNames {
		methods := catalog.TypeMethods[typeName]
		p.printf(typeNameTemplate, typeName, len(methods), r.inheritanceTree(typeName, sectioned))
		for _, fn := range methods {
			writeFunction(p, fn)
		}
		p.print("\r\n")
	}
}

func (r *Renderer) writeGlobalValues(p *pageWriter, catalog *types.Catalog) {
	p.printf(globalValueHeading, len(catalog.GlobalValues))
	p.print("\r\n")

	for _, gv := range catalog.GlobalValues {
		name := gv.Name
		if !strings.HasPrefix(name, "$") {
			name = "$" + name
		}
		p.printf(globalValueTemplate, name, r.tables.PrimitiveLabel(gv.TypeCode), gv.Address)
	}
	p.print("\r\n")
}

func (r *Renderer) writeDatablocks(p *pageWriter, catalog *types.Catalog) {
	blockNames := sortedKeys(catalog.Datablocks)
	sectioned := make(map[string]bool, len(blockNames))
	for _, name := range blockNames {
		sectioned[name] = true
	}

	p.printf(datablockListHeading, len(blockNames))

	for _, blockName := range blockNames {
		db := catalog.Datablocks[blockName]
		p.printf(datablockHeading, db.Name, len(db.Properties), r.inheritanceTree(blockName, sectioned))

		propertyNames := sortedKeys(db.Properties)
		for _, propertyName := range propertyNames {
			prop := db.Properties[propertyName]
			p.printf(propertyTemplate, prop.Name, prop.Address, prop.TypeName)
		}
	}
}

// inheritanceTree renders a type's ancestry chain, cross-linking the
// ancestors that have their own section on the page.
func (r *Renderer) inheritanceTree(typeName string, sectioned map[string]bool) string {
	chain, ok := r.tables.Inheritance[typeName]
	if !ok {
		return unknownInheritance
	}

	parts := make([]string, 0, len(chain))
	for _, ancestor := range chain {
		if sectioned[ancestor] {
			parts = append(parts, fmt.Sprintf("[[#%s]]", ancestor))
		} else {
			parts = append(parts, ancestor)
		}
	}
	return strings.Join(parts, " -> ")
}

// partitionGlobalFunctions splits the global callables into the general
// listing plus the arithmetic and audio subsets, preserving extraction
// order within each subset.
func partitionGlobalFunctions(functions []types.Function) (general, arithmetic, audio []types.Function) {
	for _, fn := range functions {
		switch {
		case isArithmetic(fn.Name):
			arithmetic = append(arithmetic, fn)
		case isAudio(fn.Name):
			audio = append(audio, fn)
		default:
			general = append(general, fn)
		}
	}
	return general, arithmetic, audio
}

func isArithmetic(name string) bool {
	if name == "" {
		return false
	}
	return name[0] == 'm' || strings.Contains(name, "Vector") || strings.Contains(name, "Matrix")
}

func isAudio(name string) bool {
	return strings.Contains(name, "alx") || strings.Contains(name, "audio") || strings.Contains(name, "getAudio")
}

// writeFunction emits one function entry. The engine registers every
// callable with an implicit leading argument, so the rendered counts
// subtract one.
func writeFunction(p *pageWriter, fn types.Function) {
	p.printf(functionTemplate, fn.Name, fn.Address, fn.Description, fn.MinArgs-1, fn.MaxArgs-1)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// pageWriter accumulates the first write error so section writers do not
// have to thread error returns through every template call.
type pageWriter struct {
	w   io.Writer
	err error
}

func (p *pageWriter) print(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *pageWriter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
