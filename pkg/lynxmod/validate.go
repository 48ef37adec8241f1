// SPDX-License-Identifier: MPL-2.0

package lynxmod

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMetadata is the sentinel error wrapped by ValidationError.
var ErrInvalidMetadata = errors.New("invalid lynx.module.json")

// ValidationError describes one rule violation in a metadata record.
// Field uses JSON-path notation ("android.permissions[1]") and is empty for
// problems with the record as a whole.
type ValidationError struct {
	Source  string
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Source, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

// Unwrap returns ErrInvalidMetadata for errors.Is() compatibility.
func (e *ValidationError) Unwrap() error { return ErrInvalidMetadata }

// Validate checks a raw metadata record (as produced by decoding JSON into
// an empty interface) and returns the normalized descriptor. source labels
// the record in error messages, usually the file path.
//
// All strings are trimmed. Empty optional fields stay at their zero value so
// writers can use presence checks.
func Validate(raw any, source string) (*Descriptor, error) {
	v := validator{source: source}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, v.fail("", "root must be a JSON object, got %s", describe(raw))
	}

	name, err := v.requiredString(obj, "name", "name")
	if err != nil {
		return nil, err
	}

	androidRaw, present := obj["android"]
	if !present {
		return nil, v.fail("", `missing required field "android"`)
	}
	android, ok := androidRaw.(map[string]any)
	if !ok {
		return nil, v.fail("android", "must be an object, got %s", describe(androidRaw))
	}

	moduleClass, err := v.className(android, "moduleClass")
	if err != nil {
		return nil, err
	}
	componentClass, err := v.className(android, "componentClass")
	if err != nil {
		return nil, err
	}

	// The tag only counts next to a component class. Without one it binds
	// nothing and is dropped, blank or not.
	var componentTag string
	if componentClass != "" {
		componentTag, err = v.requiredString(android, "componentTag", "android.componentTag")
		if err != nil {
			return nil, v.fail("android.componentTag",
				"required when android.componentClass is set (the markup tag bound to %s)", componentClass)
		}
	}

	if moduleClass == "" && componentClass == "" {
		return nil, v.fail("android",
			`must declare "moduleClass", "componentClass", or both`)
	}

	sourceDir, err := v.requiredString(android, "sourceDir", "android.sourceDir")
	if err != nil {
		return nil, err
	}

	projectName, err := v.optionalString(android, "gradleProjectName", "android.gradleProjectName")
	if err != nil {
		return nil, err
	}
	if projectName != "" {
		if ok, _ := ProjectName(projectName).IsValid(); !ok {
			return nil, v.fail("android.gradleProjectName",
				"must not contain quotes or colons, got %q", projectName)
		}
	}

	permissions, err := v.permissions(android)
	if err != nil {
		return nil, err
	}

	return &Descriptor{
		Name: ModuleName(name),
		Android: AndroidConfig{
			ModuleClass:       moduleClass,
			ComponentClass:    componentClass,
			ComponentTag:      componentTag,
			SourceDir:         sourceDir,
			GradleProjectName: ProjectName(projectName),
			Permissions:       permissions,
		},
	}, nil
}

type validator struct {
	source string
}

func (v validator) fail(field, format string, args ...any) error {
	return &ValidationError{
		Source:  v.source,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// requiredString returns the trimmed value of obj[key], failing when the key
// is missing, not a string, or blank.
func (v validator) requiredString(obj map[string]any, key, field string) (string, error) {
	rawValue, present := obj[key]
	if !present {
		return "", v.fail("", "missing required field %q", field)
	}
	s, ok := rawValue.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", v.fail(field, "must be a non-empty string, got %s", describe(rawValue))
	}
	return strings.TrimSpace(s), nil
}

// optionalString is like requiredString, but a missing key yields "".
func (v validator) optionalString(obj map[string]any, key, field string) (string, error) {
	if _, present := obj[key]; !present {
		return "", nil
	}
	s, err := v.requiredString(obj, key, field)
	if err != nil {
		return "", v.fail(field, "must be a non-empty string if provided, got %s", describe(obj[key]))
	}
	return s, nil
}

func (v validator) className(android map[string]any, key string) (ClassName, error) {
	field := "android." + key
	s, err := v.optionalString(android, key, field)
	if err != nil || s == "" {
		return "", err
	}
	name := ClassName(s)
	if ok, _ := name.IsValid(); !ok {
		return "", v.fail(field,
			`must be a fully-qualified Java class name (e.g. "com.example.MyModule"), got %q`, s)
	}
	return name, nil
}

func (v validator) permissions(android map[string]any) ([]Permission, error) {
	rawValue, present := android["permissions"]
	if !present {
		return nil, nil
	}
	list, ok := rawValue.([]any)
	if !ok {
		return nil, v.fail("android.permissions", "must be an array of strings, got %s", describe(rawValue))
	}

	var permissions []Permission
	for i, item := range list {
		field := fmt.Sprintf("android.permissions[%d]", i)
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, v.fail(field, "must be a non-empty string, got %s", describe(item))
		}
		p := Permission(strings.TrimSpace(s))
		if ok, _ := p.IsValid(); !ok {
			return nil, v.fail(field, "must be a permission identifier, got %q", s)
		}
		permissions = append(permissions, p)
	}
	return permissions, nil
}

// describe renders a raw JSON value for error messages.
func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(b)
}
