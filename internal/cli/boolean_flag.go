package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleFlagTypeName       = "bool"
	toggleFlagImplicitValue  = "true"
	toggleFlagAcceptedValues = "true, false, yes, no, on, off, 1, 0"
	toggleFlagInvalidFormat  = "invalid boolean value %q for --%s; accepted values: %s"
)

// toggleLiterals maps every spelling a toggle flag accepts to its value.
var toggleLiterals = map[string]bool{
	"true": true, "t": true, "1": true, "yes": true, "y": true, "on": true,
	"false": false, "f": false, "0": false, "no": false, "n": false, "off": false,
}

func parseToggleLiteral(input string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = toggleFlagImplicitValue
	}
	value, known := toggleLiterals[normalized]
	return value, known
}

// toggleFlagValue is a pflag.Value accepting yes/no/on/off in addition to true/false.
type toggleFlagValue struct {
	target *bool
	name   string
}

func (value *toggleFlagValue) Set(input string) error {
	parsed, known := parseToggleLiteral(input)
	if !known || value.target == nil {
		return fmt.Errorf(toggleFlagInvalidFormat, input, value.name, toggleFlagAcceptedValues)
	}
	*value.target = parsed
	return nil
}

func (value *toggleFlagValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *toggleFlagValue) Type() string {
	return toggleFlagTypeName
}

// registerBooleanFlag defines a toggle flag. A bare --name sets it to true.
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = defaultValue
	flagSet.Var(&toggleFlagValue{target: target, name: name}, name, usage)
	registered := flagSet.Lookup(name)
	registered.DefValue = strconv.FormatBool(defaultValue)
	registered.NoOptDefVal = toggleFlagImplicitValue
}

// normalizeBooleanFlagArguments folds "--name value" into "--name=value" for toggle
// flags when value is a recognized literal, so "--structure no" disables the overview.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	toggleNames := collectBooleanFlagNames(command)
	if len(toggleNames) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == "--" {
			return append(normalized, arguments[index:]...)
		}
		flagName, isLongFlag := strings.CutPrefix(argument, "--")
		_, isToggle := toggleNames[flagName]
		if isLongFlag && isToggle && !strings.Contains(flagName, "=") && index+1 < len(arguments) {
			next := arguments[index+1]
			if _, known := parseToggleLiteral(next); known && next != "" && !strings.HasPrefix(next, "-") {
				normalized = append(normalized, argument+"="+next)
				index++
				continue
			}
		}
		normalized = append(normalized, argument)
	}
	return normalized
}

func collectBooleanFlagNames(command *cobra.Command) map[string]struct{} {
	names := map[string]struct{}{}
	if command == nil {
		return names
	}
	var visitCommand func(current *cobra.Command)
	visitCommand = func(current *cobra.Command) {
		record := func(flag *pflag.Flag) {
			if flag.Value != nil && flag.Value.Type() == toggleFlagTypeName {
				names[flag.Name] = struct{}{}
			}
		}
		current.PersistentFlags().VisitAll(record)
		current.Flags().VisitAll(record)
		for _, child := range current.Commands() {
			visitCommand(child)
		}
	}
	visitCommand(command)
	return names
}
