// Package scanner reconstructs the engine entity catalog from decompiled
// pseudo-source text.
//
// The text was never meant to be machine-read: the only statement
// delimiter is the semicolon, and semicolons also appear inside quoted
// description strings. The scanner therefore works as a two-phase lexer
// rather than a grammar. A literal-aware pre-pass neutralizes semicolons
// inside quoted spans with a sentinel character, then a coarse boundary
// matcher locates registration calls per entity category, an argument
// decomposer splits each call into fields, and small extractors recover
// names, addresses and argument counts.
//
// Datablock properties carry no owning-type argument; the owner is
// inferred by scanning backward from the match to the enclosing
// declaration header and mapping the registering subroutine's address
// through the configured type table.
//
// Extraction is single-threaded and batch-oriented. One bad record is
// silently discarded and the scan continues; the corpus is irregular and
// hand-maintained, so local recovery beats hard failure.
package scanner
