package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// detectUnknownFields compares the decoded document with known struct fields.
// Unknown keys are reported rather than rejected so older binaries accept
// newer files.
func detectUnknownFields(raw interface{}) []string {
	doc, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}

	known := getYAMLFields(reflect.TypeOf(Config{}))
	var warnings []string
	for key := range doc {
		if key == "$schema" {
			continue // $schema is explicitly allowed and ignored
		}
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
		}
	}
	sort.Strings(warnings)
	return warnings
}

// getYAMLFields returns a map of known YAML field names for a struct type.
func getYAMLFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			fields[name] = true
		}
	}
	return fields
}
