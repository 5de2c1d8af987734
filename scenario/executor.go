package scenario

import (
	"fmt"
	"linktree/list"
	"linktree/tree"
	"strconv"
	"strings"
)

const noValue = "none"

// Failure is a statement whose expectation did not hold.
type Failure struct {
	Line    int
	Message string
}

func (f Failure) String() string {
	return fmt.Sprintf("line %v: %v", f.Line, f.Message)
}

// Report summarizes one replayed script.
type Report struct {
	Name         string
	Operations   map[string]int
	Errors       map[string]int
	Expectations int
	Failures     []Failure
}

func (r *Report) Failed() bool {
	return len(r.Failures) > 0
}

type outcome struct {
	statement Statement
	value     string
	err       error
}

// Executor replays a single script against its own list and tree.
type Executor struct {
	failFast bool
	logf     func(format string, v ...interface{})
	list     *list.LinkedList[float64]
	tree     *tree.Tree[string]
	last     outcome
}

func NewExecutor(failFast bool, logf func(format string, v ...interface{})) *Executor {
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	return &Executor{
		failFast: failFast,
		logf:     logf,
		list:     list.New[float64](),
		tree:     tree.Empty[string](),
	}
}

func (e *Executor) Run(script *Script) *Report {
	report := &Report{
		Name:       script.Name,
		Operations: map[string]int{},
		Errors:     map[string]int{},
	}
	for _, statement := range script.Statements {
		switch statement.Target {
		case TargetExpect, TargetExpectError:
			report.Expectations++
			if message, ok := e.check(statement); !ok {
				report.Failures = append(report.Failures, Failure{Line: statement.Line, Message: message})
				e.logf("%v: --- line %v: %v", script.Name, statement.Line, message)
				if e.failFast {
					return report
				}
			}
			continue
		}

		e.last = e.apply(statement)
		report.Operations[statement.Target]++
		if e.last.err != nil {
			report.Errors[statement.Target]++
			e.logf("%v: %v -> error: %v", script.Name, statement, e.last.err)
		} else {
			e.logf("%v: %v -> %v", script.Name, statement, e.last.value)
		}
	}
	return report
}

func (e *Executor) check(statement Statement) (string, bool) {
	previous := e.last
	if statement.Target == TargetExpectError {
		if previous.err == nil {
			return fmt.Sprintf("expected '%v' to fail, got %v", previous.statement, previous.value), false
		}
		return "", true
	}
	want := strings.Join(statement.Args, " ")
	if previous.err != nil {
		return fmt.Sprintf("expected '%v' to give %v, failed with: %v", previous.statement, want, previous.err), false
	}
	if previous.value != want {
		return fmt.Sprintf("expected '%v' to give %v, got %v", previous.statement, want, previous.value), false
	}
	return "", true
}

func (e *Executor) apply(statement Statement) outcome {
	var value string
	var err error
	switch statement.Target {
	case TargetList:
		value, err = e.applyList(statement.Op, statement.Args)
	case TargetTree:
		value, err = e.applyTree(statement.Op, statement.Args)
	default:
		err = fmt.Errorf("unknown target '%v'", statement.Target)
	}
	return outcome{statement: statement, value: value, err: err}
}

// Arguments were validated by Parse, so conversions below cannot fail.
func number(arg string) float64 {
	value, _ := parseNumber(arg)
	return value
}

func index(arg string) int {
	value, _ := parseIndex(arg)
	return value
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

func (e *Executor) applyList(op string, args []string) (string, error) {
	l := e.list
	switch op {
	case "new":
		items := make([]float64, len(args))
		for i, arg := range args {
			items[i] = number(arg)
		}
		e.list = list.New(items...)
		return e.list.String(), nil
	case "append":
		l.Append(number(args[0]))
		return strconv.Itoa(l.Len()), nil
	case "insert":
		if err := l.Insert(number(args[0]), index(args[1])); err != nil {
			return "", err
		}
		return strconv.Itoa(l.Len()), nil
	case "pop":
		var item float64
		var err error
		if len(args) == 0 {
			item, err = l.PopLast()
		} else {
			item, err = l.Pop(index(args[0]))
		}
		if err != nil {
			return "", err
		}
		return formatNumber(item), nil
	case "remove":
		return strconv.FormatBool(l.Remove(number(args[0]))), nil
	case "max":
		item, err := list.Maximum(l)
		if err != nil {
			return "", err
		}
		return formatNumber(item), nil
	case "get":
		item, err := l.Get(index(args[0]))
		if err != nil {
			return "", err
		}
		return formatNumber(item), nil
	case "contains":
		return strconv.FormatBool(l.Contains(number(args[0]))), nil
	case "len":
		return strconv.Itoa(l.Len()), nil
	case "last":
		item, ok := l.Last()
		if !ok {
			return noValue, nil
		}
		return formatNumber(item), nil
	case "show":
		return l.String(), nil
	}
	return "", fmt.Errorf("unknown list operation '%v'", op)
}

func (e *Executor) applyTree(op string, args []string) (string, error) {
	t := e.tree
	switch op {
	case "new":
		if len(args) == 0 {
			e.tree = tree.Empty[string]()
		} else {
			e.tree = tree.New(args[0])
		}
		return strconv.Itoa(e.tree.Len()), nil
	case "add":
		if t.IsEmpty() {
			e.tree = tree.New(args[1])
			return strconv.Itoa(e.tree.Len()), nil
		}
		parent := t.Find(args[0])
		if parent == nil {
			return "", fmt.Errorf("parent '%v' not found", args[0])
		}
		parent.Add(tree.New(args[1]))
		return strconv.Itoa(t.Len()), nil
	case "remove":
		return strconv.FormatBool(t.Remove(args[0])), nil
	case "contains":
		return strconv.FormatBool(t.Contains(args[0])), nil
	case "empty":
		return strconv.FormatBool(t.IsEmpty()), nil
	case "root":
		root, ok := t.Root()
		if !ok {
			return noValue, nil
		}
		return root, nil
	case "len":
		return strconv.Itoa(t.Len()), nil
	case "show":
		if t.IsEmpty() {
			return noValue, nil
		}
		e.logf("tree:\n%v", strings.TrimRight(t.String(), "\n"))
		return t.Inline(), nil
	}
	return "", fmt.Errorf("unknown tree operation '%v'", op)
}
