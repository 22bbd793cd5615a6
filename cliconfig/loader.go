// Package cliconfig fills lexan's command config structs from command line
// flags, environment variables and an optional config file.
//
// Fields opt in with struct tags:
//
//	cli:"dictionary"          flag name, or arg:N / arg:* for positional args
//	env:"LEXAN_INPUT"         fallback for positional args
//	normalize:"filepath"      filepath or list
//	validate:"required"       comma separated: required, file-exists
//	label:"input file"        name used in validation errors
package cliconfig

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/buildkite/lexan/internal/osutil"
	"github.com/buildkite/lexan/logger"
	"github.com/oleiade/reflections"
	"github.com/urfave/cli"
)

type Loader struct {
	// The context that is passed when using a urfave/cli action
	CLI *cli.Context

	// The struct that the config values will be loaded into
	Config any

	Logger logger.Logger

	// Paths checked, in order, when --config isn't given
	DefaultConfigFilePaths []string

	// The file that was used when loading this configuration
	File *File
}

// Matches "arg:index" (specific non-flag arg) or "arg:*" (all non-flag args).
var argCLINameRE = regexp.MustCompile(`^arg:(\d+|\*)$`)

// Load fills Config and returns any warnings worth showing the user.
func (l *Loader) Load() (warnings []string, err error) {
	if err := l.findFile(); err != nil {
		return nil, err
	}

	if l.File != nil {
		if err := l.File.Load(); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		for key := range l.File.Config {
			if !l.knowsOption(key) {
				warnings = append(warnings, fmt.Sprintf("Ignoring unknown config option `%s` in %s", key, l.File.Path))
			}
		}
	}

	fields, err := reflections.FieldsDeep(l.Config)
	if err != nil {
		return warnings, fmt.Errorf("listing config fields: %w", err)
	}

	for _, fieldName := range fields {
		cliName, _ := reflections.GetFieldTag(l.Config, fieldName, "cli")
		if cliName != "" {
			if err := l.setFieldValueFromCLI(fieldName, cliName); err != nil {
				return warnings, fmt.Errorf("setting config field %s: %w", fieldName, err)
			}
		}

		if normalization, _ := reflections.GetFieldTag(l.Config, fieldName, "normalize"); normalization != "" {
			if err := l.normalizeField(fieldName, normalization); err != nil {
				return warnings, fmt.Errorf("normalizing config field %s: %w", fieldName, err)
			}
		}

		if rules, _ := reflections.GetFieldTag(l.Config, fieldName, "validate"); rules != "" {
			label, _ := reflections.GetFieldTag(l.Config, fieldName, "label")
			if label == "" {
				label = cliName
			}
			if label == "" {
				label = fieldName
			}
			if err := l.validateField(fieldName, label, rules); err != nil {
				return warnings, err
			}
		}
	}

	return warnings, nil
}

func (l *Loader) findFile() error {
	// A file passed explicitly has to exist, the defaults are best-effort.
	if path := l.CLI.String("config"); path != "" {
		file := File{Path: path}
		if !file.Exists() {
			absolutePath, _ := file.AbsolutePath()
			return fmt.Errorf("a configuration file could not be found at: %q", absolutePath)
		}
		l.File = &file
		return nil
	}

	for _, path := range l.DefaultConfigFilePaths {
		file := File{Path: path}
		if file.Exists() {
			l.File = &file
			return nil
		}
	}
	return nil
}

// knowsOption reports whether a config file key names a flag of the running
// command.
func (l *Loader) knowsOption(key string) bool {
	if l.CLI.Command.Name == "" {
		return true
	}
	for _, flag := range l.CLI.Command.Flags {
		for name := range strings.SplitSeq(flag.GetName(), ",") {
			if strings.TrimSpace(name) == key {
				return true
			}
		}
	}
	return false
}

func (l *Loader) setFieldValueFromCLI(fieldName, cliName string) error {
	fieldKind, err := reflections.GetFieldKind(l.Config, fieldName)
	if err != nil {
		return fmt.Errorf("getting the kind of struct field %q: %w", fieldName, err)
	}
	fieldType, err := reflections.GetFieldType(l.Config, fieldName)
	if err != nil {
		return fmt.Errorf("getting the type of struct field %q: %w", fieldName, err)
	}

	var value any

	if argMatch := argCLINameRE.FindStringSubmatch(cliName); argMatch != nil {
		value, err = l.argValue(fieldName, argMatch[1])
		if err != nil {
			return err
		}
	} else {
		// Config file values are the defaults, anything given on the
		// command line or in the environment wins over them.
		if l.File != nil {
			if raw, ok := l.File.Config[cliName]; ok {
				value, err = parseFileValue(raw, fieldKind, fieldType)
				if err != nil {
					return fmt.Errorf("config option %s: %w", cliName, err)
				}
			}
		}

		if value == nil || l.cliValueIsSet(cliName) {
			value, err = l.flagValue(cliName, fieldKind, fieldType)
			if err != nil {
				return err
			}
		}
	}

	if value == nil {
		return nil
	}
	if err := reflections.SetField(l.Config, fieldName, value); err != nil {
		return fmt.Errorf("setting value field %q to %q: %w", fieldName, value, err)
	}
	return nil
}

func (l *Loader) argValue(fieldName, argNum string) (any, error) {
	if argNum == "*" {
		if len(l.CLI.Args()) == 0 {
			return nil, nil
		}
		return []string(l.CLI.Args()), nil
	}

	argIndex, err := strconv.Atoi(argNum)
	if err != nil {
		return nil, fmt.Errorf("converting string to int: %w", err)
	}
	if len(l.CLI.Args()) > argIndex {
		return l.CLI.Args()[argIndex], nil
	}

	if envName, _ := reflections.GetFieldTag(l.Config, fieldName, "env"); envName != "" {
		if envValue, ok := os.LookupEnv(envName); ok {
			return envValue, nil
		}
	}
	return nil, nil
}

func (l *Loader) flagValue(cliName string, kind reflect.Kind, fieldType string) (any, error) {
	switch kind {
	case reflect.String:
		return l.CLI.String(cliName), nil
	case reflect.Slice:
		return l.CLI.StringSlice(cliName), nil
	case reflect.Bool:
		return l.CLI.Bool(cliName), nil
	case reflect.Int:
		return l.CLI.Int(cliName), nil
	case reflect.Int64:
		if fieldType == "time.Duration" {
			return l.CLI.Duration(cliName), nil
		}
		return l.CLI.Int64(cliName), nil
	default:
		return nil, fmt.Errorf("unable to handle type: %s", kind)
	}
}

func parseFileValue(raw string, kind reflect.Kind, fieldType string) (any, error) {
	switch kind {
	case reflect.String:
		return raw, nil
	case reflect.Slice:
		return strings.Split(raw, ","), nil
	case reflect.Bool:
		return strconv.ParseBool(raw)
	case reflect.Int:
		return strconv.Atoi(raw)
	case reflect.Int64:
		if fieldType == "time.Duration" {
			return time.ParseDuration(raw)
		}
		return strconv.ParseInt(raw, 10, 64)
	default:
		return nil, fmt.Errorf("unable to convert string to type %s", kind)
	}
}

// Errorf returns an error that points the user at the command's help.
func (l *Loader) Errorf(format string, v ...any) error {
	suffix := fmt.Sprintf(" See: `%s %s --help`", l.CLI.App.Name, l.CLI.Command.Name)
	return fmt.Errorf(format+suffix, v...)
}

// cliValueIsSet reports whether the flag was given on the command line or
// through its environment variable. cli.Context.IsSet only knows about the
// former.
func (l *Loader) cliValueIsSet(cliName string) bool {
	if l.CLI.IsSet(cliName) {
		return true
	}

	for _, flag := range l.CLI.Command.Flags {
		name, _ := reflections.GetField(flag, "Name")
		envVar, _ := reflections.GetField(flag, "EnvVar")
		if name != cliName {
			continue
		}
		if envVarStr, ok := envVar.(string); ok && envVarStr != "" {
			return os.Getenv(strings.TrimSpace(envVarStr)) != ""
		}
	}

	return false
}

func (l *Loader) fieldValueIsEmpty(fieldName string) bool {
	value, _ := reflections.GetField(l.Config, fieldName)
	v := reflect.ValueOf(value)
	if !v.IsValid() || v.IsZero() {
		return true
	}
	return v.Kind() == reflect.Slice && v.Len() == 0
}

func (l *Loader) validateField(fieldName, label, validationRules string) error {
	for rule := range strings.SplitSeq(validationRules, ",") {
		switch rule {
		case "required":
			if l.fieldValueIsEmpty(fieldName) {
				return l.Errorf("Missing %s.", label)
			}

		case "file-exists":
			value, _ := reflections.GetField(l.Config, fieldName)
			if path, ok := value.(string); ok && path != "" {
				if _, err := os.Stat(path); err != nil {
					return fmt.Errorf("couldn't find %s located at %s: %w", label, path, err)
				}
			}

		default:
			return fmt.Errorf("unknown config validation rule %q", rule)
		}
	}

	return nil
}

func (l *Loader) normalizeField(fieldName, normalization string) error {
	value, _ := reflections.GetField(l.Config, fieldName)

	switch normalization {
	case "filepath":
		path, ok := value.(string)
		if !ok {
			return fmt.Errorf("filepath normalization only works on string fields")
		}
		normalized, err := osutil.NormalizeFilePath(path)
		if err != nil {
			return err
		}
		return reflections.SetField(l.Config, fieldName, normalized)

	case "list":
		items, ok := value.([]string)
		if !ok {
			return fmt.Errorf("list normalization only works on slice fields")
		}
		normalized := []string{}
		for _, item := range items {
			for part := range strings.SplitSeq(item, ",") {
				if part = strings.TrimSpace(part); part != "" {
					normalized = append(normalized, part)
				}
			}
		}
		return reflections.SetField(l.Config, fieldName, normalized)

	default:
		return fmt.Errorf("unknown normalization %q", normalization)
	}
}
