package settings

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

var (
	// ErrUnknownKey indicates a key the settings catalog does not define.
	ErrUnknownKey = errors.New("unknown setting")

	// ErrInvalidValue indicates a value that fails its definition's type or
	// constraints.
	ErrInvalidValue = errors.New("invalid setting value")
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateValue checks value against the definition's type and constraints.
// Violations are reported as ErrInvalidValue with detail.
func ValidateValue(def lurchtypes.SettingDefinition, value string) error {
	switch def.Type {
	case lurchtypes.SettingBool:
		if _, err := ParseBool(value); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidValue, err)
		}
	case lurchtypes.SettingInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, value)
		}
		if def.Min != nil && n < *def.Min {
			return fmt.Errorf("%w: %d is below minimum %d", ErrInvalidValue, n, *def.Min)
		}
		if def.Max != nil && n > *def.Max {
			return fmt.Errorf("%w: %d is above maximum %d", ErrInvalidValue, n, *def.Max)
		}
	case lurchtypes.SettingCategorical:
		for _, option := range def.Options {
			if value == option {
				return nil
			}
		}
		return fmt.Errorf("%w: %q is not one of %s", ErrInvalidValue, value, strings.Join(def.Options, ", "))
	case lurchtypes.SettingColor:
		if !colorPattern.MatchString(value) {
			return fmt.Errorf("%w: %q is not a #rrggbb color", ErrInvalidValue, value)
		}
	case lurchtypes.SettingText, lurchtypes.SettingLongText:
		if def.Pattern != "" {
			matched, err := regexp.MatchString(def.Pattern, value)
			if err != nil {
				return fmt.Errorf("invalid pattern in definition for %q: %w", def.Key, err)
			}
			if !matched {
				return fmt.Errorf("%w: %q does not match pattern %s", ErrInvalidValue, value, def.Pattern)
			}
		}
	case lurchtypes.SettingNote:
		return fmt.Errorf("%w: %q is a note and stores no value", ErrInvalidValue, def.Key)
	default:
		return fmt.Errorf("%w: unsupported setting type %q", ErrInvalidValue, def.Type)
	}
	return nil
}

// ParseBool parses the boolean spellings setting values accept.
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value %q (use true/false, 1/0, yes/no, on/off)", value)
	}
}
