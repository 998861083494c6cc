package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

// enum adapts a parsed enumeration to pflag.Value.
type enum[T fmt.Stringer] struct {
	target *T
	parse  func(string) (T, error)
	name   string
}

var _ pflag.Value = (*enum[fmt.Stringer])(nil)

// enumVar defines a flag holding one value of an enumeration.
func enumVar[T fmt.Stringer](fs *pflag.FlagSet, target *T, parse func(string) (T, error), flag, typ, usage string) {
	fs.Var(&enum[T]{target: target, parse: parse, name: typ}, flag, usage)
}

func (e *enum[T]) String() string {
	if e.target == nil {
		return ""
	}

	return (*e.target).String()
}

func (e *enum[T]) Set(s string) error {
	v, err := e.parse(s)
	if err != nil {
		return err
	}

	*e.target = v

	return nil
}

func (e *enum[T]) Type() string { return e.name }
