package lexer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestBOMStripping(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected []byte
	}{
		{"with_bom", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, []byte("hi")},
		{"without_bom", []byte("hi"), []byte("hi")},
		{"empty_with_bom", []byte{0xEF, 0xBB, 0xBF}, []byte{}},
		{"empty_without_bom", []byte{}, []byte{}},
		{"partial_bom", []byte{0xEF, 0xBB, 'h', 'i'}, []byte{0xEF, 0xBB, 'h', 'i'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, bytes.Equal(Normalize(tt.input), tt.expected))
		})
	}
}

func TestNFCNormalization(t *testing.T) {
	input := "café" // "cafe" + combining acute (NFD)
	result := string(Normalize([]byte(input)))
	require.True(t, norm.NFC.IsNormalString(result))
	require.Equal(t, "café", result)
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"hello", "café", "café", "﻿hello"}
	for _, in := range inputs {
		first := Normalize([]byte(in))
		second := Normalize(first)
		require.True(t, bytes.Equal(first, second))
	}
}

// TestNormalizeDeterministicTokens verifies lexically equivalent source
// (BOM vs no BOM, NFD vs NFC string-literal bytes) produces identical
// token streams once Normalize runs ahead of the lexer.
func TestNormalizeDeterministicTokens(t *testing.T) {
	variants := []string{
		`fn main() { x := "café"; }`,
		"﻿" + `fn main() { x := "café"; }`,
	}
	var baselines [][]Token
	for _, v := range variants {
		toks, err := Tokenize(string(Normalize([]byte(v))))
		require.NoError(t, err)
		baselines = append(baselines, toks)
	}
	require.Equal(t, len(baselines[0]), len(baselines[1]))
	for i := range baselines[0] {
		require.Equal(t, baselines[0][i].Kind, baselines[1][i].Kind)
	}
}
