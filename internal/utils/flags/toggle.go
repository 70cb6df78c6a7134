// Package flags provides pflag value types shared by the release commands.
package flags

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue         = "true"
	toggleFalseCanonicalValue        = "false"
	toggleTypeNameConstant           = "bool"
	toggleParseErrorTemplate         = "invalid toggle value %q (expected yes or no)"
	toggleDefaultYesPlaceholder      = "<YES|no>"
	toggleDefaultNoPlaceholder       = "<yes|NO>"
	toggleUsageTemplateConstant      = "`%s` %s"
	toggleAssignmentSeparator        = "="
	longFlagPrefixConstant           = "--"
	shortFlagPrefixConstant          = "-"
	argumentTerminatorConstant       = "--"
	shorthandLengthConstant          = 1
	consumedSingleArgumentConstant   = 1
	consumedArgumentAndValueConstant = 2
)

var toggleLiterals = map[string]bool{
	"true":  true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"1":     true,
	"t":     true,
	"false": false,
	"no":    false,
	"n":     false,
	"off":   false,
	"0":     false,
	"f":     false,
}

type toggleRegistry struct {
	mutex      sync.RWMutex
	names      map[string]struct{}
	shorthands map[string]struct{}
}

var registeredToggles = &toggleRegistry{names: map[string]struct{}{}, shorthands: map[string]struct{}{}}

// ParseToggle interprets yes/no style values. An empty value means yes.
func ParseToggle(rawValue string) (bool, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if len(normalizedValue) == 0 {
		return true, nil
	}
	parsedValue, known := toggleLiterals[normalizedValue]
	if !known {
		return false, fmt.Errorf(toggleParseErrorTemplate, rawValue)
	}
	return parsedValue, nil
}

// AddToggleFlag registers a boolean flag that accepts yes/no values, either as "--flag=no" or "--flag no".
// A bare "--flag" means yes.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	flagSet.VarP(newToggleValue(defaultValue, target), name, shorthand, usage)
	registeredFlag := flagSet.Lookup(name)
	if registeredFlag == nil {
		return
	}
	registeredFlag.NoOptDefVal = toggleTrueCanonicalValue
	registeredFlag.Usage = describeToggle(usage, defaultValue)

	registeredToggles.register(name, shorthand)
}

// NormalizeToggleArguments joins toggle flags with a following value so pflag sees "--flag=value".
// Arguments after "--" are left untouched.
func NormalizeToggleArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); {
		current := arguments[index]
		if current == argumentTerminatorConstant {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		joined, consumed := joinToggleValue(arguments, index)
		normalized = append(normalized, joined)
		index += consumed
	}
	return normalized
}

func joinToggleValue(arguments []string, index int) (string, int) {
	current := arguments[index]
	if !registeredToggles.matches(current) || strings.Contains(current, toggleAssignmentSeparator) {
		return current, consumedSingleArgumentConstant
	}
	if index+1 >= len(arguments) {
		return current, consumedSingleArgumentConstant
	}
	candidateValue := arguments[index+1]
	if strings.HasPrefix(candidateValue, shortFlagPrefixConstant) {
		return current, consumedSingleArgumentConstant
	}
	if _, parseError := ParseToggle(candidateValue); parseError != nil {
		return current, consumedSingleArgumentConstant
	}
	return current + toggleAssignmentSeparator + candidateValue, consumedArgumentAndValueConstant
}

func describeToggle(description string, defaultValue bool) string {
	placeholder := toggleDefaultNoPlaceholder
	if defaultValue {
		placeholder = toggleDefaultYesPlaceholder
	}
	return strings.TrimSpace(fmt.Sprintf(toggleUsageTemplateConstant, placeholder, strings.TrimSpace(description)))
}

func (registry *toggleRegistry) register(name string, shorthand string) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	registry.names[name] = struct{}{}
	if len(shorthand) > 0 {
		registry.shorthands[shorthand] = struct{}{}
	}
}

// matches reports whether the argument names a registered toggle, ignoring any "=value" suffix.
func (registry *toggleRegistry) matches(argument string) bool {
	flagName, _, _ := strings.Cut(argument, toggleAssignmentSeparator)

	registry.mutex.RLock()
	defer registry.mutex.RUnlock()

	if strings.HasPrefix(flagName, longFlagPrefixConstant) {
		_, exists := registry.names[strings.TrimPrefix(flagName, longFlagPrefixConstant)]
		return exists
	}
	if strings.HasPrefix(flagName, shortFlagPrefixConstant) {
		shorthand := strings.TrimPrefix(flagName, shortFlagPrefixConstant)
		if len(shorthand) != shorthandLengthConstant {
			return false
		}
		_, exists := registry.shorthands[shorthand]
		return exists
	}
	return false
}

type toggleValue struct {
	currentValue bool
	target       *bool
}

func newToggleValue(defaultValue bool, target *bool) *toggleValue {
	if target != nil {
		*target = defaultValue
	}
	return &toggleValue{currentValue: defaultValue, target: target}
}

func (value *toggleValue) Set(rawValue string) error {
	parsedValue, parseError := ParseToggle(rawValue)
	if parseError != nil {
		return parseError
	}
	value.currentValue = parsedValue
	if value.target != nil {
		*value.target = parsedValue
	}
	return nil
}

func (value *toggleValue) String() string {
	if value != nil && value.currentValue {
		return toggleTrueCanonicalValue
	}
	return toggleFalseCanonicalValue
}

func (value *toggleValue) Type() string {
	return toggleTypeNameConstant
}
