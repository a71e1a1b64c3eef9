package config

// Language Configuration
//
// This is the SINGLE SOURCE OF TRUTH for language-level constants shared
// between the pipeline stages and the CLI.

const SourceFileExt = ".qc"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".qc", ".txt"}

// BuiltinTypeNames seed every fresh global scope with one built-in type
// symbol each.
var BuiltinTypeNames = []string{"int"}

// WordSize is the stack slot size of a declared variable. Only int32
// variables exist, so every declaration moves the offset by one word.
const WordSize = 4

// Scope name tags. A nested scope is named tag + hex(node identity).
const (
	GlobalScopeName = "GLOBAL_SCOPE"

	TagIf    = "IF_"
	TagElse  = "ELSE_"
	TagWhile = "WHILE_"
	TagDo    = "DO_"
	TagBlock = "BLOCK_"
)

// IR naming. Temporaries count up as _t0, _t1, ...; labels as L0, L1, ...
const (
	TempPrefix  = "_t"
	LabelPrefix = "L"
)

// EntryLabel precedes main-line code in rendered IR listings.
const EntryLabel = "main:"
