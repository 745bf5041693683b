// Package commit turns raw commit messages into structured Conventional
// Commit records.
//
// This package implements:
//   - header parsing for `type[!][(scope)][!]: description`
//   - the closed Type enumeration, including the "other" catch-all and the
//     distinguished breaking-change type
//   - JSON/YAML export and re-import of parsed records
//
// Parsing never fails: a header that does not follow the convention is
// recorded as TypeOther with the full header as its description.
package commit
