package env

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// identifierPattern matches names that both POSIX sh and fish accept as
// variable names.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Variable names exported by default.
const (
	VarDisplay     = "DISPLAY"
	VarDBusSession = "DBUS_SESSION_BUS_ADDRESS"
	VarSSHAuthSock = "SSH_AUTH_SOCK"
)

// DefaultVariables returns the default export list in output order.
func DefaultVariables() []string {
	return []string{VarDisplay, VarDBusSession, VarSSHAuthSock}
}

// Var is a single variable picked from an environment.
type Var struct {
	Name  string
	Value string
}

// MissingVariableError reports a variable absent from the source environment.
type MissingVariableError struct {
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("variable %s is not set in the session environment", e.Name)
}

// SliceToMap converts KEY=VALUE entries into a map, skipping malformed rows.
// Later duplicates win, matching how a shell would see them.
func SliceToMap(envSlice []string) map[string]string {
	result := make(map[string]string, len(envSlice))
	for _, envVar := range envSlice {
		parts := strings.SplitN(envVar, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			continue
		}
		result[parts[0]] = parts[1]
	}
	return result
}

// Lookup returns the values of names from envMap, in the order of names.
// A missing variable fails with *MissingVariableError unless skipMissing is
// set, in which case it is left out of the result.
func Lookup(envMap map[string]string, names []string, skipMissing bool) ([]Var, error) {
	result := make([]Var, 0, len(names))
	for _, name := range names {
		value, ok := envMap[name]
		if !ok {
			if skipMissing {
				continue
			}
			return nil, &MissingVariableError{Name: name}
		}
		result = append(result, Var{Name: name, Value: value})
	}
	return result, nil
}

// ValidateNames checks that every name could appear in an environment block.
func ValidateNames(names []string) error {
	if len(names) == 0 {
		return errors.New("no variables to export")
	}

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		switch {
		case name == "":
			return errors.New("variable name must not be empty")
		case !identifierPattern.MatchString(name):
			return fmt.Errorf("invalid variable name %q: must be a shell identifier (letters, digits and '_', not starting with a digit)", name)
		case seen[name]:
			return fmt.Errorf("variable %s listed more than once", name)
		}
		seen[name] = true
	}
	return nil
}
