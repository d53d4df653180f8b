package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/cardfx/internal/compiler"
	"github.com/roach88/cardfx/internal/ir"
)

// Error code constants - unified across all CLI commands.
// Manifest validation codes (E2xx) come from the compiler package and
// table validation codes (E3xx) from the rules package.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeScanError    = "E002" // Directory scan error
	ErrCodeNoFiles      = "E003" // No manifest files found
	ErrCodeLoadFailed   = "E004" // CUE load failed
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeBuildFailed  = "E006" // CUE build failed
	ErrCodeFormat       = "E007" // Unsupported manifest extension
	ErrCodeCompile      = "E008" // Manifest compiles to an invalid deck
	ErrCodeStore        = "E009" // History database error
	ErrCodeInvalidInput = "E010" // Bad flag values
	ErrCodeValidation   = "E011" // Manifest or table failed validation
	ErrCodeTestFailed   = "E012" // One or more scenarios failed
)

// LoadError represents an error that occurred while loading a manifest.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
	File    string    // YAML file, if known
	Line    int       // YAML line, if known
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadDeck reads a deck manifest. path is one of:
//   - a directory of .cue files
//   - a single .cue file
//   - a .yaml or .yml file
func LoadDeck(path string) (ir.Deck, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ir.Deck{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("manifest not found: %s", path)}
	}
	if err != nil {
		return ir.Deck{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing manifest: %v", err)}
	}

	if info.IsDir() {
		return loadCUEDir(path)
	}

	switch filepath.Ext(path) {
	case ".cue":
		return loadCUE(filepath.Dir(path), []string{filepath.Base(path)})
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return ir.Deck{}, &LoadError{
			Code:    ErrCodeFormat,
			Message: fmt.Sprintf("unsupported manifest %s: want a directory, .cue, .yaml or .yml", path),
		}
	}
}

func loadCUEDir(dir string) (ir.Deck, error) {
	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return ir.Deck{}, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return ir.Deck{}, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}
	return loadCUE(dir, []string{"."})
}

func loadCUE(dir string, args []string) (ir.Deck, error) {
	ctx := cuecontext.New()
	instances := load.Instances(args, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return ir.Deck{}, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}

	inst := instances[0]
	if inst.Err != nil {
		return ir.Deck{}, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return ir.Deck{}, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}
	// Err only reports a failed root; nested conflicts surface here.
	if err := value.Validate(); err != nil {
		return ir.Deck{}, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("validating CUE value: %v", err)}
	}

	deck, err := compiler.CompileDeck(value)
	if err != nil {
		return ir.Deck{}, convertCompileError(err)
	}
	return deck, nil
}

func loadYAML(path string) (ir.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ir.Deck{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading manifest: %v", err)}
	}
	deck, err := compiler.ParseYAMLDeck(path, data)
	if err != nil {
		return ir.Deck{}, convertCompileError(err)
	}
	return deck, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    ErrCodeCompile,
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
			File:    compileErr.File,
			Line:    compileErr.Line,
		}
	}
	return &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
}
