// Package config supplies the static lookup tables the scraper core
// consumes as constructor-time inputs: the registration-routine address
// lists per entity category, the datablock address-to-type table, the
// primitive type code labels, and the type inheritance chains used by the
// renderer.
//
// The tables are versioned configuration data owned by this collaborator
// layer, not process-wide globals inside the core. Defaults reproduce the
// Tribes 2 corpus tables; an HCL file can override or extend any of them
// per corpus:
//
//	skip_lines = 33350
//
//	datablock_types = {
//	    "61E7A0" = "ExplosionData"
//	}
package config
