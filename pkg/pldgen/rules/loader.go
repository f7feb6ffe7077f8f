package rules

import (
	"bytes"
	_ "embed"
	"os"
	"strings"
	"sync"

	"github.com/ukaji3/pldgen-go/pkg/pldgen/transform"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

//go:embed registry.yaml
var defaultRegistry []byte

// ErrInvalidRegistry wraps every registry validation failure.
var ErrInvalidRegistry = errors.Base("invalid sheet registry")

const maxSheetNameLen = 31

var loadDefault = sync.OnceValues(func() (*Registry, error) {
	return Parse(defaultRegistry)
})

// Default returns the built-in registry. It is parsed once and shared, so callers
// must treat it as read-only.
func Default() (*Registry, error) {
	return loadDefault()
}

// Load reads and validates a registry file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading registry: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates registry YAML. Unknown keys are rejected.
func Parse(data []byte) (*Registry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var reg Registry
	if err := dec.Decode(&reg); err != nil {
		return nil, errors.Errorf("%w: decoding: %s", ErrInvalidRegistry, err)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Validate checks names, kind-specific fields and transform references.
func (r *Registry) Validate() error {
	if len(r.Sheets) == 0 {
		return errors.Errorf("%w: no sheets", ErrInvalidRegistry)
	}
	seen := make(map[string]bool, len(r.Sheets))
	for i, rule := range r.Sheets {
		if err := validateSheetName(rule.Name); err != nil {
			return errors.Errorf("%w: sheet %d: %s", ErrInvalidRegistry, i, err)
		}
		key := strings.ToLower(rule.Name)
		if seen[key] {
			return errors.Errorf("%w: duplicate sheet %q", ErrInvalidRegistry, rule.Name)
		}
		seen[key] = true
		if err := rule.validate(); err != nil {
			return errors.Errorf("%w: sheet %q: %s", ErrInvalidRegistry, rule.Name, err)
		}
	}
	return nil
}

func (r Rule) validate() error {
	switch r.Kind {
	case KindSynthesized:
		if r.Source != "" {
			return errors.New("synthesized sheet takes no source")
		}
		if err := rejectKeys("synthesized sheet", r.OnMissing != "", len(r.Transforms) > 0,
			len(r.Columns) > 0, len(r.Defaults) > 0, false); err != nil {
			return err
		}
		if len(r.Fields) == 0 {
			return errors.New("synthesized sheet needs fields")
		}
		return validateFields(r.Fields)
	case KindStaticPlaceholder:
		if r.Source != "" {
			return errors.New("placeholder sheet takes no source")
		}
		if err := rejectKeys("placeholder sheet", r.OnMissing != "", len(r.Transforms) > 0,
			false, false, len(r.Fields) > 0); err != nil {
			return err
		}
		return r.validatePlaceholder()
	case KindVerbatimCopy, KindRenamedCopy, KindTransformedCopy:
	default:
		return errors.Errorf("unknown kind %q", r.Kind)
	}

	if r.Source == "" {
		return errors.Errorf("%s needs a source sheet", r.Kind)
	}
	if r.Kind == KindVerbatimCopy && r.Source != r.Name {
		return errors.Errorf("verbatim copy of %q must keep its name", r.Source)
	}
	if r.Kind != KindTransformedCopy && len(r.Transforms) > 0 {
		return errors.Errorf("%s takes no transforms", r.Kind)
	}
	if len(r.Fields) > 0 {
		return errors.Errorf("%s takes no fields", r.Kind)
	}
	if r.Policy() != MissingPlaceholder && (len(r.Columns) > 0 || len(r.Defaults) > 0) {
		return errors.New("columns and defaults need on_missing: placeholder")
	}
	if r.Kind == KindTransformedCopy && len(r.Transforms) == 0 {
		return errors.New("transformed copy needs transforms")
	}
	for _, t := range r.Transforms {
		if t.Column == "" {
			return errors.New("transform without column")
		}
		if _, err := transform.Lookup(t.Func); err != nil {
			return err
		}
	}

	switch r.Policy() {
	case MissingFatal, MissingSkip:
	case MissingPlaceholder:
		return r.validatePlaceholder()
	default:
		return errors.Errorf("unknown on_missing %q", r.OnMissing)
	}
	return nil
}

// rejectKeys fails on the first set key that the kind does not read.
func rejectKeys(what string, onMissing, transforms, columns, defaults, fields bool) error {
	for _, k := range []struct {
		set  bool
		name string
	}{
		{onMissing, "on_missing"},
		{transforms, "transforms"},
		{columns, "columns"},
		{defaults, "defaults"},
		{fields, "fields"},
	} {
		if k.set {
			return errors.Errorf("%s takes no %s", what, k.name)
		}
	}
	return nil
}

func (r Rule) validatePlaceholder() error {
	if len(r.Columns) == 0 {
		return errors.New("placeholder needs columns")
	}
	cols := make(map[string]bool, len(r.Columns))
	for _, c := range r.Columns {
		if c == "" {
			return errors.New("blank placeholder column")
		}
		if cols[c] {
			return errors.Errorf("duplicate column %q", c)
		}
		cols[c] = true
	}
	for c := range r.Defaults {
		if !cols[c] {
			return errors.Errorf("default for undeclared column %q", c)
		}
	}
	return nil
}

func validateFields(fields []Field) error {
	names := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return errors.New("field without name")
		}
		if names[f.Name] {
			return errors.Errorf("duplicate field %q", f.Name)
		}
		names[f.Name] = true
		switch f.Input {
		case "":
		case InputPOID, InputID, InputPOName, InputMasterKeyword:
			if f.Value != "" {
				return errors.Errorf("field %q sets both input and value", f.Name)
			}
		default:
			return errors.Errorf("field %q: unknown input %q", f.Name, f.Input)
		}
	}
	return nil
}

func validateSheetName(name string) error {
	if name == "" {
		return errors.New("empty sheet name")
	}
	if len([]rune(name)) > maxSheetNameLen {
		return errors.Errorf("sheet name %q longer than %d characters", name, maxSheetNameLen)
	}
	if strings.ContainsAny(name, `[]:*?/\`) {
		return errors.Errorf("sheet name %q contains a reserved character", name)
	}
	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return errors.Errorf("sheet name %q starts or ends with an apostrophe", name)
	}
	return nil
}
