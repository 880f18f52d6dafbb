// Package shellutil turns environment variables into statements that a shell
// can source.
//
// # Dialects
//
// Dialect is a closed set: DialectPosix, DialectFish and DialectJSON. Every
// switch over a Dialect lists all of them, and the exhaustive linter configured
// in .golangci.yml fails the build when a new dialect is added without
// handling it everywhere. Unknown values are errors, never a silent default.
//
//   - posix: export NAME=VALUE
//   - fish:  set -x NAME VALUE
//   - json:  one indented JSON object, keys in variable-list order
//
// # Quoting
//
// POSIX quoting uses al.essio.dev/pkg/shellescape: values made only of
// [A-Za-z0-9_@%+=:,./-] are printed bare, anything else is wrapped in single
// quotes with embedded single quotes written as '"'"'. Empty values become ''.
//
// Fish quoting is delegated to fish itself:
//
//	fish -c 'string escape -- "$argv[1]"' VALUE
//
// Fish's escaping rules are whatever its parser accepts, so the only exact
// implementation is the one shipped with fish. A missing fish binary or a
// non-zero exit fails the whole render.
//
// # Atomic output
//
// Render formats every variable before writing anything. If any step fails,
// nothing is written to the output, so a caller piping the result into `eval`
// or `source` never sees half of an export block.
package shellutil
