package tmpl

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"unicode"

	"github.com/saylorsolutions/blacksmith/pkg/forger"
)

var (
	//go:embed forged_embed.go.tmpl
	tmplText     string
	tmplTemplate = template.Must(template.New("template").Parse(tmplText))
)

type Params struct {
	Package        string
	Exposed        bool
	FileMethodName string
	SourceName     string
	KeyString      string
	Forged         string
	MaxLen         int

	forger         *forger.Forger
	fileData       []byte
	targetFileName string
	outputDir      string
}

// FuncName is the name of the generated accessor function.
func (p *Params) FuncName() string {
	if p.Exposed {
		return "Unforge" + p.FileMethodName
	}
	return "unforge" + p.FileMethodName
}

// ParamOpt operates on Params in a standard and predictable way, and is used in GenerateFile.
// If any ParamOpt returns an error, then file generation ceases and the error is returned.
type ParamOpt = func(params *Params) error

// ExposeFunctions indicates that generated functions should be exposed.
func ExposeFunctions(val ...bool) ParamOpt {
	return func(params *Params) error {
		if len(val) > 0 {
			params.Exposed = val[0]
			return nil
		}
		params.Exposed = true
		return nil
	}
}

// UseForger sets the Forger, and by extension the key, used to forge the file contents.
func UseForger(f *forger.Forger) ParamOpt {
	return func(params *Params) error {
		if f == nil {
			return errors.New("forger cannot be nil")
		}
		params.forger = f
		return nil
	}
}

// PackageName specifies the package name of the generated file.
// This is useful for cases where the expected package name doesn't match the name of the containing directory.
func PackageName(name string) ParamOpt {
	name = strings.TrimSpace(name)
	return func(params *Params) error {
		if len(name) == 0 {
			return nil
		}
		params.Package = name
		return nil
	}
}

// OutputDir sets the directory the generated file is written to, which is the current directory by default.
// The package name is derived from this directory unless PackageName is also given.
func OutputDir(dir string) ParamOpt {
	return func(params *Params) error {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		params.outputDir = abs
		params.Package = filepath.Base(abs)
		return nil
	}
}

// GenerateFile will generate a Go file embedding the forged contents of the input file.
// Various generation options may be passed as zero or more ParamOpt.
func GenerateFile(input string, opts ...ParamOpt) (string, error) {
	params := new(Params)
	if err := populateContextData(params); err != nil {
		return "", err
	}
	if err := populateFileData(params, input); err != nil {
		return "", err
	}

	for _, opt := range opts {
		if err := opt(params); err != nil {
			return "", err
		}
	}

	if params.forger == nil {
		f, err := forger.New()
		if err != nil {
			return "", err
		}
		params.forger = f
	}
	if err := forgeData(params); err != nil {
		return "", err
	}

	target := filepath.Join(params.outputDir, params.targetFileName+".go")
	out, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = out.Close()
	}()

	if err := tmplTemplate.Execute(out, params); err != nil {
		return "", err
	}
	return target, nil
}

func populateContextData(params *Params) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	params.outputDir = cwd
	params.Package = filepath.Base(cwd)
	return nil
}

var (
	fileCleansePattern = regexp.MustCompile(`[^a-zA-Z0-9_]`)
)

func populateFileData(params *Params, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	params.fileData = data
	_, fname := filepath.Split(file)
	params.SourceName = fname
	params.FileMethodName = fileCleansePattern.ReplaceAllString(unicap(fname), "_")
	params.targetFileName = fileCleansePattern.ReplaceAllString(fname, "_")
	return nil
}

func forgeData(params *Params) error {
	forged, err := params.forger.Forge(string(params.fileData))
	if err != nil {
		return fmt.Errorf("failed to forge '%s': %w", params.SourceName, err)
	}
	params.Forged = forged
	params.KeyString = fmt.Sprintf("%#v", params.forger.Key().Bytes())
	params.MaxLen = params.forger.MaxLen()
	return nil
}

func unicap(s string) string {
	runes := []rune(s)
	switch len(runes) {
	case 0:
		return ""
	case 1:
		return string(unicode.ToUpper(runes[0]))
	default:
		return string(append([]rune{unicode.ToUpper(runes[0])}, runes[1:]...))
	}
}
