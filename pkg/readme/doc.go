// Package readme retrieves the dfmt README and locates its option table.
//
// A Source produces the raw markdown (over HTTP or from a local copy),
// ExtractSection cuts the table body out of it, and Outline lists the
// document's headings so a missing section can be reported with context.
package readme
