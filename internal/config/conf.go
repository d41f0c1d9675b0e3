package config

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/xml2csv/core/errors"
)

// confFile is a parsed INI-style config.
type confFile struct {
	Lines []confLine `parser:"@@*"`
}

// confLine is a single meaningful line.
type confLine struct {
	Section  string `parser:"  @Section"`
	Property string `parser:"| @Property"`
}

var confLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `[#;][^\r\n]*`},
	{Name: "Section", Pattern: `\[[^\]\r\n]+\]`},
	// Property line: key=value. Keys can contain letters, digits, underscores, dots, dashes.
	{Name: "Property", Pattern: `[a-zA-Z_][a-zA-Z0-9_.\-]*[ \t]*=[^\r\n]*`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Newline", Pattern: `[\r\n]+`},
})

var confParser = participle.MustBuild[confFile](
	participle.Lexer(confLexer),
	participle.Elide("Comment", "Whitespace", "Newline"),
)

// ParseConf decodes an INI-style config document with [reader] and
// [writer] sections.
func ParseConf(data []byte) (*Config, error) {
	file, err := confParser.ParseBytes("", data)
	if err != nil {
		pe := &errors.ParseError{Format: "config", Message: err.Error(), Err: err}
		var perr participle.Error
		if errors.As(err, &perr) {
			pe.Line = perr.Position().Line
			pe.Message = perr.Message()
		}
		return nil, pe
	}

	cfg := &Config{Processor: Processor{Reader: ClientConfig{}, Writer: ClientConfig{}}}
	var current ClientConfig
	for _, line := range file.Lines {
		if line.Section != "" {
			name := strings.ToLower(strings.TrimSpace(strings.Trim(line.Section, "[]")))
			switch name {
			case "reader", "processor.reader":
				current = cfg.Processor.Reader
			case "writer", "processor.writer":
				current = cfg.Processor.Writer
			default:
				return nil, errors.NewValidation("section", "unknown section ["+name+"]")
			}
			continue
		}

		idx := strings.Index(line.Property, "=")
		key := strings.TrimSpace(line.Property[:idx])
		value := strings.TrimSpace(line.Property[idx+1:])
		if current == nil {
			return nil, errors.NewValidation(key, "property outside of a [reader] or [writer] section")
		}
		current[key] = value
	}
	return cfg, nil
}
