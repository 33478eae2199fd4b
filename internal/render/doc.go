// Package render formats an assembled engine catalog as a DokuWiki
// reference page: global methods with arithmetic and audio subsets split
// out, type methods with inheritance trees, global values with primitive
// type labels, and datablocks with their property listings.
//
// The renderer consumes the catalog read-only. Map-backed sections are
// emitted in sorted name order so repeated renders of the same catalog
// produce identical pages.
package render
