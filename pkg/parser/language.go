package parser

import (
	"path/filepath"
	"strings"
)

// Language identifies a supported source dialect.
type Language int

const (
	// LanguageTypeScript covers .ts, .mts, .cts and (via IsTSXFile) .tsx files.
	LanguageTypeScript Language = iota
	// LanguageJavaScript covers .js, .jsx, .mjs and .cjs files.
	LanguageJavaScript
	// LanguageUnknown marks files fluentstatic cannot parse.
	LanguageUnknown
)

// String returns the string representation of the language.
func (l Language) String() string {
	switch l {
	case LanguageTypeScript:
		return "typescript"
	case LanguageJavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

// DetectLanguage detects the source dialect from a file path.
// Declaration files (.d.ts) are reported as LanguageUnknown: they carry no
// style-producing code and parsing them wastes a pool slot.
func DetectLanguage(filePath string) Language {
	base := strings.ToLower(filepath.Base(filePath))
	if strings.HasSuffix(base, ".d.ts") || strings.HasSuffix(base, ".d.mts") || strings.HasSuffix(base, ".d.cts") {
		return LanguageUnknown
	}

	switch filepath.Ext(base) {
	case ".ts", ".mts", ".cts", ".tsx":
		return LanguageTypeScript
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	default:
		return LanguageUnknown
	}
}

// IsTSXFile reports whether the path is a TSX file, which needs the TSX
// grammar variant (the plain TypeScript grammar rejects JSX).
func IsTSXFile(filePath string) bool {
	return strings.ToLower(filepath.Ext(filePath)) == ".tsx"
}

// IsJSXFile reports whether the path is a JSX file. JSX parses with the
// standard JavaScript grammar.
func IsJSXFile(filePath string) bool {
	return strings.ToLower(filepath.Ext(filePath)) == ".jsx"
}
