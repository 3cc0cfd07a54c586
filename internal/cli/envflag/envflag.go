// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package envflag defines flags whose defaults can be overridden by
// environment variables.
package envflag

import (
	"flag"
	"strconv"
)

// Type is a constraint that permits only types supported by envflag package.
type Type interface {
	bool | int | string
}

// Value defines a flag with the given name, default value and usage.
//
// If the environment variable envName is set to a value that parses as T, it
// replaces the default. Values that don't parse are ignored. A flag given on
// the command line always wins.
func Value[T Type](
	fs *flag.FlagSet, getenv func(string) string,
	name, envName string, value T, usage string,
) *T {
	result := new(T)
	*result = value
	if s := getenv(envName); s != "" {
		if v, err := parse[T](s); err == nil {
			*result = v
		}
	}

	usage += " Can be overridden by " + envName + " environment variable."

	fv := &flagValue[T]{value: result}
	fs.Var(fv, name, usage)
	return result
}

type flagValue[T Type] struct {
	value *T
}

func (f *flagValue[T]) String() string {
	if f.value == nil {
		return ""
	}
	switch v := any(*f.value).(type) {
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	}
	return ""
}

func (f *flagValue[T]) Set(s string) error {
	v, err := parse[T](s)
	if err != nil {
		return err
	}
	*f.value = v
	return nil
}

// IsBoolFlag lets boolean flags be given without a value, like -n.
func (f *flagValue[T]) IsBoolFlag() bool {
	_, ok := any(*new(T)).(bool)
	return ok
}

func parse[T Type](s string) (T, error) {
	var zero T
	switch any(zero).(type) {
	case bool:
		v, err := strconv.ParseBool(s)
		return any(v).(T), err
	case int:
		v, err := strconv.Atoi(s)
		return any(v).(T), err
	case string:
		return any(s).(T), nil
	}
	return zero, nil
}
