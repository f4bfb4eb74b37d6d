package text

import (
	"fmt"
	"strconv"

	"github.com/FocuswithJustin/passage/core/errors"
)

// Default budgets. The ESV API permits at most 500 consecutive verses and
// at most half of any one book per request.
const (
	DefaultMaxVerses     = 500
	DefaultMaxProportion = 0.5
)

// Option keys accepted by OptionsFromMap.
const (
	KeyIncludeReferences = "include-passage-references"
	KeyMaxVerses         = "max-verses"
	KeyMaxProportion     = "max-proportion"
)

// Options controls a text fetch.
type Options struct {
	// IncludeReferences asks the source to prefix each passage with its
	// reference.
	IncludeReferences bool
	// MaxVerses caps the fetched length in verses.
	MaxVerses int
	// MaxProportion caps the fetched length as a fraction of each book.
	MaxProportion float64
}

// DefaultOptions returns bare verse text with the default budgets.
func DefaultOptions() Options {
	return Options{
		MaxVerses:         DefaultMaxVerses,
		MaxProportion:     DefaultMaxProportion,
	}
}

// Validate checks the budgets are usable.
func (o Options) Validate() error {
	if o.MaxVerses < 1 {
		return errors.NewValidation(KeyMaxVerses, "must be at least 1")
	}
	if o.MaxProportion <= 0 || o.MaxProportion > 1 {
		return errors.NewValidation(KeyMaxProportion, "must be in (0, 1]")
	}
	return nil
}

// OptionsFromMap overlays string settings (as they arrive from flags or a
// query string) on DefaultOptions. Unknown keys are rejected.
func OptionsFromMap(m map[string]string) (Options, error) {
	opts := DefaultOptions()
	for k, v := range m {
		switch k {
		case KeyIncludeReferences:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return Options{}, &errors.ValidationError{Field: k, Value: v, Message: "not a boolean"}
			}
			opts.IncludeReferences = b
		case KeyMaxVerses:
			n, err := strconv.Atoi(v)
			if err != nil {
				return Options{}, &errors.ValidationError{Field: k, Value: v, Message: "not an integer"}
			}
			opts.MaxVerses = n
		case KeyMaxProportion:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return Options{}, &errors.ValidationError{Field: k, Value: v, Message: "not a number"}
			}
			opts.MaxProportion = f
		default:
			return Options{}, errors.NewValidation(k, fmt.Sprintf("unknown option %q", k))
		}
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
