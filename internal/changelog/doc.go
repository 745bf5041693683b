// Package changelog renders release changelogs from parsed commits.
//
// This package implements:
//   - grouping of commit descriptions into fixed, ordered sections
//   - Markdown rendering of a release block (`## version`, `### section`)
//   - prepending a release block to an existing CHANGELOG.md without
//     touching earlier releases
//   - parsing a rendered document back into releases
//   - colored terminal previews
package changelog
