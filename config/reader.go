package config

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"go.viam.com/utils"
)

// AttributeMap is a raw, undecoded configuration.
type AttributeMap map[string]interface{}

// Read reads a config from the given file. Environment variables referenced as ${VAR} are
// expanded before the file is parsed.
func Read(filePath string) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read config file %q", filePath)
	}
	attrs, err := parseAttributes(buf)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse config file %q", filePath)
	}
	return FromAttributes(attrs)
}

// ReadAttributes reads the undecoded attributes of a config file so that they may be amended
// before decoding.
func ReadAttributes(filePath string) (AttributeMap, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read config file %q", filePath)
	}
	return parseAttributes(buf)
}

// FromReader reads a config from the given reader.
func FromReader(r io.Reader) (*Config, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	buf, err := envsubst.Bytes(raw)
	if err != nil {
		return nil, err
	}
	attrs, err := parseAttributes(buf)
	if err != nil {
		return nil, err
	}
	return FromAttributes(attrs)
}

// parseAttributes accepts JSON5 so hand written files may carry comments and trailing commas.
func parseAttributes(buf []byte) (AttributeMap, error) {
	attrs := AttributeMap{}
	if err := json5.Unmarshal(buf, &attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}

// FromAttributes decodes and validates a config from an attribute map. Every key in RequiredKeys
// must be present and unknown keys are rejected.
func FromAttributes(attrs AttributeMap) (*Config, error) {
	for _, key := range RequiredKeys {
		if _, ok := attrs[key]; !ok {
			return nil, utils.NewConfigValidationFieldRequiredError("", key)
		}
	}
	// JSON numbers arrive as float64 and would otherwise be truncated silently.
	if count, ok := attrs[KeyNumberOfHeadings].(float64); ok && count != math.Trunc(count) {
		return nil, utils.NewConfigValidationError("", errors.Errorf("%q must be an integer, got %v", KeyNumberOfHeadings, count))
	}

	var conf Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &conf,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(map[string]interface{}(attrs)); err != nil {
		return nil, errors.Wrap(err, "cannot decode config")
	}
	if err := conf.Validate(""); err != nil {
		return nil, err
	}
	return &conf, nil
}

// ApplyOverrides sets attributes from "key=value" pairs, converting each value to the type of
// the field it targets.
func ApplyOverrides(attrs AttributeMap, overrides []string) error {
	for _, override := range overrides {
		key, value, found := strings.Cut(override, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return errors.Errorf("override %q is not of the form key=value", override)
		}
		value = strings.TrimSpace(value)

		var converted interface{}
		var err error
		switch key {
		case KeyGridSeparation, KeyTurningRadius, KeyMaxLength, KeySampleStep:
			converted, err = cast.ToFloat64E(value)
		case KeyNumberOfHeadings:
			// Decimal only, "010" is ten.
			converted, err = strconv.Atoi(value)
		case KeyMotionModel, KeyOutputFile:
			converted = value
		default:
			return errors.Errorf("unknown config key %q, expected one of %v", key, knownKeys())
		}
		if err != nil {
			return errors.Wrapf(err, "invalid value for %q", key)
		}
		attrs[key] = converted
	}
	return nil
}

func knownKeys() []string {
	keys := []string{
		KeyGridSeparation, KeyTurningRadius, KeyMaxLength, KeyNumberOfHeadings,
		KeySampleStep, KeyMotionModel, KeyOutputFile,
	}
	sort.Strings(keys)
	return keys
}
