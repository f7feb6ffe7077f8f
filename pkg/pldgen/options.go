// Package pldgen converts a rules workbook into a PLD workbook.
package pldgen

import (
	"strings"

	"github.com/ukaji3/pldgen-go/pkg/pldgen/rules"
	"gitlab.com/tozd/go/errors"
)

// Request carries the four identifiers typed alongside the upload.
type Request struct {
	POID          string
	ID            string
	POName        string
	MasterKeyword string
}

// Validate returns ErrMissingInput naming every blank identifier.
func (r Request) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"POID", r.POID},
		{"ID", r.ID},
		{"PO name", r.POName},
		{"master keyword", r.MasterKeyword},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return errors.Errorf("%w: %s", ErrMissingInput, strings.Join(missing, ", "))
	}
	return nil
}

// Input returns the identifier a synthesized field refers to.
func (r Request) Input(key string) string {
	switch key {
	case rules.InputPOID:
		return r.POID
	case rules.InputID:
		return r.ID
	case rules.InputPOName:
		return r.POName
	case rules.InputMasterKeyword:
		return r.MasterKeyword
	default:
		return ""
	}
}

// Options configures a conversion.
type Options struct {
	// Registry is the output schema. If nil, rules.Default() is used.
	Registry *rules.Registry
}

// DefaultOptions returns options using the built-in registry.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) registry() (*rules.Registry, error) {
	if o.Registry != nil {
		return o.Registry, nil
	}
	return rules.Default()
}
