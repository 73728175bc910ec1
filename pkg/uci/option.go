package uci

import (
	"errors"
	"fmt"
	"strings"
)

type Option interface {
	UciName() string
	UciString() string
	Set(s string) error
}

// ComboOption is a fixed-choice UCI option. OnSet, when present, runs
// after the value changes so the host can react (e.g. reopen the debug
// log).
type ComboOption struct {
	Name  string
	Vars  []string
	Value *string
	OnSet func(string)
}

func (opt *ComboOption) UciName() string {
	return opt.Name
}

func (opt *ComboOption) UciString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "option name %v type combo default %v", opt.Name, *opt.Value)
	for _, v := range opt.Vars {
		fmt.Fprintf(&sb, " var %v", v)
	}
	return sb.String()
}

func (opt *ComboOption) Set(s string) error {
	for _, v := range opt.Vars {
		if strings.EqualFold(v, s) {
			*opt.Value = v
			if opt.OnSet != nil {
				opt.OnSet(v)
			}
			return nil
		}
	}
	return errors.New("argument out of range")
}
