package integrators

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/odestep/internal/dynamo"
)

var methods = map[string]func() dynamo.Stepper{
	"euler":    func() dynamo.Stepper { return NewEuler() },
	"rk2":      func() dynamo.Stepper { return NewRK2() },
	"midpoint": func() dynamo.Stepper { return NewRK2() },
	"rk4":      func() dynamo.Stepper { return NewRK4() },
}

// Lookup returns the stepper registered under name. Names are case-insensitive.
func Lookup(name string) (dynamo.Stepper, error) {
	fn, ok := methods[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownMethod, name, Names())
	}
	return fn(), nil
}

// Names returns the canonical method names in ascending order of accuracy.
func Names() []string {
	names := make([]string, 0, len(methods))
	for name, fn := range methods {
		if fn().Name() == name {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return methods[names[i]]().Order() < methods[names[j]]().Order()
	})
	return names
}
