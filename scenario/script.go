package scenario

import (
	"fmt"
	"linktree/util"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

const (
	TargetList        = "list"
	TargetTree        = "tree"
	TargetExpect      = "expect"
	TargetExpectError = "expect-error"
)

// Statement is one line of a scenario script.
type Statement struct {
	Line   int
	Target string
	Op     string
	Args   []string
}

func (s Statement) String() string {
	fields := []string{s.Target}
	if len(s.Op) > 0 {
		fields = append(fields, s.Op)
	}
	return strings.Join(append(fields, s.Args...), " ")
}

type Script struct {
	Name       string
	Statements []Statement
}

type argKind int

const (
	argNumber argKind = iota
	argIndex
	argText
)

type signature struct {
	required []argKind
	// variadic kind accepted after the required args, up to maxArgs in total
	variadic *argKind
	maxArgs  int
}

func fixed(kinds ...argKind) signature {
	return signature{required: kinds, maxArgs: len(kinds)}
}

func optional(kind argKind, maxArgs int) signature {
	return signature{variadic: &kind, maxArgs: maxArgs}
}

var signatures = map[string]map[string]signature{
	TargetList: {
		"new":      optional(argNumber, -1),
		"append":   fixed(argNumber),
		"insert":   fixed(argNumber, argIndex),
		"pop":      optional(argIndex, 1),
		"remove":   fixed(argNumber),
		"max":      fixed(),
		"get":      fixed(argIndex),
		"contains": fixed(argNumber),
		"len":      fixed(),
		"last":     fixed(),
		"show":     fixed(),
	},
	TargetTree: {
		"new":      optional(argText, 1),
		"add":      fixed(argText, argText),
		"remove":   fixed(argText),
		"contains": fixed(argText),
		"empty":    fixed(),
		"root":     fixed(),
		"len":      fixed(),
		"show":     fixed(),
	},
}

// Decode converts raw script bytes of any detectable encoding to text with
// normalized line endings.
func Decode(content []byte) (string, error) {
	encoding, _, _ := charset.DetermineEncoding(content, "text/plain")
	decodedBytes, err := encoding.NewDecoder().Bytes(content)
	if err != nil {
		return "", fmt.Errorf("failed to decode script: %v", err)
	}
	text := strings.TrimPrefix(string(decodedBytes), "\ufeff")
	return strings.ReplaceAll(text, "\r\n", "\n"), nil
}

// Parse decodes and checks a whole script. Any malformed line fails the script
// with ERROR_SCENARIO_SYNTAX.
func Parse(name string, content []byte) (*Script, error) {
	text, err := Decode(content)
	if err != nil {
		return nil, syntaxError(name, 0, err.Error())
	}

	script := &Script{Name: name}
	for i, line := range strings.Split(text, "\n") {
		if commentIndex := strings.Index(line, "#"); commentIndex >= 0 {
			line = line[:commentIndex]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		statement, err := parseStatement(i+1, fields, len(script.Statements) > 0)
		if err != nil {
			return nil, syntaxError(name, i+1, err.Error())
		}
		script.Statements = append(script.Statements, statement)
	}
	return script, nil
}

func syntaxError(name string, line int, message string) error {
	return &util.ErrorWithCode{
		StatusCode:    util.ERROR_SCENARIO_SYNTAX,
		InternalError: fmt.Errorf("%v:%v: %v", name, line, message),
	}
}

func parseStatement(line int, fields []string, hasPrevious bool) (Statement, error) {
	statement := Statement{Line: line, Target: fields[0]}
	switch statement.Target {
	case TargetExpect:
		if len(fields) < 2 {
			return statement, fmt.Errorf("expect needs a value")
		}
		if !hasPrevious {
			return statement, fmt.Errorf("expect without a preceding statement")
		}
		statement.Args = fields[1:]
		return statement, nil
	case TargetExpectError:
		if len(fields) > 1 {
			return statement, fmt.Errorf("expect-error takes no arguments")
		}
		if !hasPrevious {
			return statement, fmt.Errorf("expect-error without a preceding statement")
		}
		return statement, nil
	}

	ops, found := signatures[statement.Target]
	if !found {
		return statement, fmt.Errorf("unknown target '%v'", statement.Target)
	}
	if len(fields) < 2 {
		return statement, fmt.Errorf("missing %v operation", statement.Target)
	}
	statement.Op = fields[1]
	sig, found := ops[statement.Op]
	if !found {
		return statement, fmt.Errorf("unknown %v operation '%v'", statement.Target, statement.Op)
	}
	statement.Args = fields[2:]
	return statement, sig.check(statement.Args)
}

func (sig signature) check(args []string) error {
	if len(args) < len(sig.required) {
		return fmt.Errorf("expected %v arguments, got %v", len(sig.required), len(args))
	}
	if sig.maxArgs >= 0 && len(args) > sig.maxArgs {
		return fmt.Errorf("expected at most %v arguments, got %v", sig.maxArgs, len(args))
	}
	for i, arg := range args {
		kind := argText
		if i < len(sig.required) {
			kind = sig.required[i]
		} else if sig.variadic != nil {
			kind = *sig.variadic
		}
		if err := kind.check(arg); err != nil {
			return err
		}
	}
	return nil
}

func (kind argKind) check(arg string) error {
	switch kind {
	case argNumber:
		if _, err := parseNumber(arg); err != nil {
			return err
		}
	case argIndex:
		if _, err := parseIndex(arg); err != nil {
			return err
		}
	}
	return nil
}

func parseNumber(arg string) (float64, error) {
	value, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("'%v' is not a number", arg)
	}
	return value, nil
}

func parseIndex(arg string) (int, error) {
	value, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("'%v' is not an index", arg)
	}
	return value, nil
}
