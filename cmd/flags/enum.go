// Package flags holds custom urfave/cli flag types.
package flags

// via https://github.com/urfave/cli/issues/602

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

// EnumValue allows the cli to present a fixed set of string values.
type EnumValue struct {
	Name        string
	Usage       string
	Destination *string
	Enum        []string
	Value       string
}

// Set accepts value only if it is one of the allowed values.
func (e *EnumValue) Set(value string) error {
	for _, enum := range e.Enum {
		if enum == value {
			*e.Destination = value
			return nil
		}
	}
	return fmt.Errorf("allowed values are %s", strings.Join(e.Enum, ", "))
}

func (e *EnumValue) String() string {
	if e.Destination == nil || *e.Destination == "" {
		return e.Value
	}
	return *e.Destination
}

// Selected returns the value chosen for the enum flag called name, or an empty
// string when no such flag is defined on the context or its parents.
func Selected(cliCtx *cli.Context, name string) string {
	e, ok := cliCtx.Generic(name).(*EnumValue)
	if !ok {
		return ""
	}
	return e.String()
}

// GenericFlag wraps the EnumValue in a GenericFlag value so that it satisfies the cli.Flag interface.
// The allowed values are appended to the usage text.
func (e EnumValue) GenericFlag() *cli.GenericFlag {
	*e.Destination = e.Value
	var i cli.Generic = &e
	return &cli.GenericFlag{
		Name:        e.Name,
		Usage:       fmt.Sprintf("%s (%s)", e.Usage, strings.Join(e.Enum, ", ")),
		Destination: i,
		Value:       i,
	}
}
