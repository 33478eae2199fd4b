// Package types provides the shared domain model for the T2 engine scraper.
//
// This package defines the entities reconstructed from the decompiled
// pseudo-source text, along with the catalog that accumulates them.
//
// # Core Types
//
// Function represents a callable engine function registered with the
// script runtime, either global or bound to an object type:
//
//	fn := types.Function{
//	    EngineComponent: types.EngineComponent{
//	        Name:        "getWord",
//	        Address:     "5A0F00",
//	        Description: "getWord(text, index)",
//	    },
//	    MinArgs: 3,
//	    MaxArgs: 3,
//	}
//
// Datablock represents a simulation record type (not an instance); its
// properties are keyed by name and owned exclusively by the datablock.
//
// # Catalog
//
// Catalog is the assembled output of a scrape run. Entities are never
// mutated after being added; the catalog is handed read-only to the
// renderer and storage layers.
package types
