// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. This separation allows config.go to focus on YAML structure
// and loading, while this file handles the CLI interface where config is
// accessed by string keys (e.g., "validate.encoding_lines").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/false". This enables proper
// defaulting - we only apply defaults when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"validate.check_encoding", "validate.encoding_lines",
		"log.level", "log.audit",
		"tweets.license", "tweets.timezone",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "validate.check_encoding":
		return strconv.FormatBool(c.CheckEncoding()), nil
	case "validate.encoding_lines":
		return strconv.Itoa(c.EncodingLines()), nil
	case "log.level":
		return c.LogLevel(), nil
	case "log.audit":
		return strconv.FormatBool(c.Audit()), nil
	case "tweets.license":
		return c.TweetsLicense(), nil
	case "tweets.timezone":
		return c.Timezone(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "validate.check_encoding":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Validation.CheckEncoding = &b
	case "validate.encoding_lines":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinEncodingLines || n > MaxEncodingLines {
			return fmt.Errorf("%w: validate.encoding_lines must be an integer between %d and %d",
				ErrInvalidValue, MinEncodingLines, MaxEncodingLines)
		}
		c.Validation.EncodingLines = &n
	case "log.level":
		if _, err := ParseLevel(value); err != nil {
			return err
		}
		c.Log.Level = strings.ToLower(value)
	case "log.audit":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Log.Audit = &b
	case "tweets.license":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: tweets.license must not be empty", ErrInvalidValue)
		}
		c.Tweets.License = value
	case "tweets.timezone":
		if _, err := time.LoadLocation(value); err != nil || value == "" {
			return fmt.Errorf("%w: tweets.timezone must be an IANA zone name such as Europe/Copenhagen", ErrInvalidValue)
		}
		c.Tweets.Timezone = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

func parseBool(key, value string) (bool, error) {
	v := strings.ToLower(value)
	if v != "true" && v != "false" {
		return false, fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
	}
	return v == "true", nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		v, _ := c.Get(k)
		out[k] = v
	}
	return out
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "validate.check_encoding":
		return c.Validation.CheckEncoding != nil
	case "validate.encoding_lines":
		return c.Validation.EncodingLines != nil
	case "log.level":
		return c.Log.Level != ""
	case "log.audit":
		return c.Log.Audit != nil
	case "tweets.license":
		return c.Tweets.License != ""
	case "tweets.timezone":
		return c.Tweets.Timezone != ""
	default:
		return false
	}
}
