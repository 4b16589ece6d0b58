package toolchain

import "path/filepath"

// Names of the three toolchain executables installed under the home bin
// directory.
const (
	CompilerName    = "vira-compiler"
	PackagesName    = "vira-packages"
	ParserLexerName = "vira-parser_lexer"
)

// Binaries resolves absolute paths to the toolchain executables inside a
// fixed bin directory. The CLI never searches PATH; the home layout is
// authoritative.
type Binaries struct {
	Dir string
}

// Compiler returns the absolute path of the compiler/VM binary.
func (b Binaries) Compiler() string {
	return filepath.Join(b.Dir, CompilerName)
}

// Packages returns the absolute path of the package-manager binary.
func (b Binaries) Packages() string {
	return filepath.Join(b.Dir, PackagesName)
}

// ParserLexer returns the absolute path of the parser/lexer utility.
func (b Binaries) ParserLexer() string {
	return filepath.Join(b.Dir, ParserLexerName)
}
