// Package stages provides the built-in stages of a linking pipeline:
//
//	exclude-resources       FILTER       drops resources matching glob patterns
//	normalize-line-endings  TRANSFORMER  rewrites CRLF as LF
//	sort-resources          SORTER       moves matching resources to the front
//	zip                     COMPRESSOR   deflates resource content
//
// Patterns use '*' for any sequence of characters, '/' included, and '?' for a
// single character.
package stages
