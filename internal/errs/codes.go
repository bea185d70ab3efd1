// Package errs provides the structured error taxonomy shared by every stage
// of the nog front-end pipeline: lexer, parser, module loader, type checker,
// and emitter. Every error carries a stable code for tooling (warnings carry
// none), plus the
// plain `<file>:<line>: error: <message>` rendering spec.md §7 requires for
// humans.
package errs

// Code is a stable diagnostic identifier, grouped by pipeline phase.
type Code string

const (
	// Lexer errors (LEX###)
	LexUnterminatedChar Code = "LEX001"
	LexEmptyChar        Code = "LEX002"

	// Parser errors (PAR###)
	ParUnexpectedToken  Code = "PAR001"
	ParImportsAfterDefs Code = "PAR002"
	ParMissingBody      Code = "PAR003"
	ParInvalidSelect    Code = "PAR004"
	ParInvalidOrHandler Code = "PAR005"

	// Module loader errors (MOD###)
	ModNotFound       Code = "MOD001"
	ModEmptyDirectory Code = "MOD002"
	ModNoManifest     Code = "MOD003"
	ModCyclicImport   Code = "MOD004"
	ModManifestParse  Code = "MOD005"

	// Type checker errors (TC###)
	TCUnknownType    Code = "TC001"
	TCUndefinedName  Code = "TC002"
	TCDuplicateDef   Code = "TC003"
	TCArityMismatch  Code = "TC004"
	TCTypeMismatch   Code = "TC005"
	TCInvalidContext Code = "TC006"
	TCMissingReturn  Code = "TC007"
	TCPrivateAccess  Code = "TC008"

	// Emitter errors (EMIT###) — internal compiler errors, spec.md §7 calls
	// these "rare"
	EmitMalformedAST Code = "EMIT001"
)
