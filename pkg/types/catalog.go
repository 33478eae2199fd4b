package types

import "time"

// Catalog is the assembled entity model produced by one scrape run. It
// accumulates extracted records during the run and is treated as read-only
// afterwards; no entity is mutated once added.
type Catalog struct {
	// GlobalFunctions holds global callables in extraction order.
	GlobalFunctions []Function

	// TypeMethods groups type-bound methods under their owning type name,
	// each group in extraction order.
	TypeMethods map[string][]Function

	// GlobalValues holds runtime-exposed variables in extraction order.
	GlobalValues []GlobalVariable

	// Datablocks maps resolved type names to datablock records. Entries
	// are created lazily on first property reference and never removed.
	Datablocks map[string]*Datablock

	typeMethodTotal int
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		GlobalFunctions: make([]Function, 0),
		TypeMethods:     make(map[string][]Function),
		GlobalValues:    make([]GlobalVariable, 0),
		Datablocks:      make(map[string]*Datablock),
	}
}

// AddGlobalFunction appends a global callable to the catalog
func (c *Catalog) AddGlobalFunction(fn Function) {
	c.GlobalFunctions = append(c.GlobalFunctions, fn)
}

// AddTypeMethod groups a bound method under its owning type
func (c *Catalog) AddTypeMethod(fn Function) {
	c.TypeMethods[fn.TypeName] = append(c.TypeMethods[fn.TypeName], fn)
	c.typeMethodTotal++
}

// AddGlobalValue appends a runtime variable to the catalog
func (c *Catalog) AddGlobalValue(gv GlobalVariable) {
	c.GlobalValues = append(c.GlobalValues, gv)
}

// AddDatablockProperty records a property under its resolved owning type,
// creating the datablock on first reference.
func (c *Catalog) AddDatablockProperty(typeName string, p Property) {
	db, ok := c.Datablocks[typeName]
	if !ok {
		db = NewDatablock(typeName)
		c.Datablocks[typeName] = db
	}
	db.SetProperty(p)
}

// GlobalFunctionCount returns the number of global callables
func (c *Catalog) GlobalFunctionCount() int {
	return len(c.GlobalFunctions)
}

// TypeMethodCount returns the number of methods bound to one type
func (c *Catalog) TypeMethodCount(typeName string) int {
	return len(c.TypeMethods[typeName])
}

// TypeMethodTotal returns the grand total of type-bound methods. It always
// equals the sum of the per-type counts.
func (c *Catalog) TypeMethodTotal() int {
	return c.typeMethodTotal
}

// PropertyTotal returns the number of properties across all datablocks
func (c *Catalog) PropertyTotal() int {
	total := 0
	for _, db := range c.Datablocks {
		total += len(db.Properties)
	}
	return total
}

// ScanStats tracks per-run extraction statistics and curation facts
type ScanStats struct {
	// Matches counts raw registration-call matches per category.
	Matches map[Category]int

	// Discarded counts matches dropped for malformed numeric fields or
	// missing structure, per category. Discards never abort a scan.
	Discarded map[Category]int

	// UnresolvedOwners lists registering-subroutine addresses that had no
	// entry in the datablock type table and were auto-registered under
	// their own hex string. These are curation debt for the lookup table.
	UnresolvedOwners []string

	StartTime time.Time
	Duration  time.Duration
}

// NewScanStats creates zeroed statistics for a run
func NewScanStats() *ScanStats {
	return &ScanStats{
		Matches:   make(map[Category]int),
		Discarded: make(map[Category]int),
		StartTime: time.Now(),
	}
}
