package errs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodesAreUniqueAcrossPhases(t *testing.T) {
	codes := []Code{
		LexUnterminatedChar, LexEmptyChar,
		ParUnexpectedToken, ParImportsAfterDefs, ParMissingBody, ParInvalidSelect, ParInvalidOrHandler,
		ModNotFound, ModEmptyDirectory, ModNoManifest, ModCyclicImport, ModManifestParse,
		TCUnknownType, TCUndefinedName, TCDuplicateDef, TCArityMismatch, TCTypeMismatch,
		TCInvalidContext, TCMissingReturn, TCPrivateAccess,
		EmitMalformedAST,
	}
	seen := map[Code]bool{}
	for _, c := range codes {
		require.False(t, seen[c], "duplicate code %s", c)
		seen[c] = true
	}
}

func TestCodePrefixesMatchPhase(t *testing.T) {
	require.Equal(t, Code("LEX001"), LexUnterminatedChar)
	require.Equal(t, Code("PAR001"), ParUnexpectedToken)
	require.Equal(t, Code("MOD001"), ModNotFound)
	require.Equal(t, Code("TC001"), TCUnknownType)
	require.Equal(t, Code("EMIT001"), EmitMalformedAST)
}
