package importer

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

var ErrValidation = errors.New("validation failed")

// Entry is a validated weight for a single slug.
type Entry struct {
	Slug   string
	Weight int
}

// Schema turns the generic structure returned by Load into ordered entries.
type Schema interface {
	Name() string
	Validate(raw any) ([]Entry, error)
}

const DefaultSchema = "slug_weights"

var schemas = map[string]Schema{
	"slug_weights":       SlugWeights{},
	"identifier_weights": IdentifierWeights{},
	"slug_list":          SlugList{},
}

// SchemaByName returns the registered schema, DefaultSchema for an empty name.
func SchemaByName(name string) (Schema, error) {
	if name == "" {
		name = DefaultSchema
	}

	schema, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema '%s'", name)
	}
	return schema, nil
}

var validate = validator.New()

type slugWeight struct {
	Slug   string `mapstructure:"slug"   validate:"required"`
	Weight *int   `mapstructure:"weight" validate:"required,gte=0"`
}

type identifierWeight struct {
	Identifier string `mapstructure:"identifier" validate:"required"`
	Weight     *int   `mapstructure:"weight"     validate:"required,gte=0"`
}

type listOf[T any] struct {
	Root []T `validate:"dive"`
}

type slugs struct {
	Root []string `validate:"dive,required"`
}

// SlugWeights expects a list of {slug, weight} mappings.
type SlugWeights struct{}

func (SlugWeights) Name() string { return "slug_weights" }

func (SlugWeights) Validate(raw any) ([]Entry, error) {
	records, err := decodeList[slugWeight](raw)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, Entry{Slug: r.Slug, Weight: *r.Weight})
	}
	return entries, nil
}

// IdentifierWeights expects a list of {identifier, weight} mappings.
type IdentifierWeights struct{}

func (IdentifierWeights) Name() string { return "identifier_weights" }

func (IdentifierWeights) Validate(raw any) ([]Entry, error) {
	records, err := decodeList[identifierWeight](raw)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, Entry{Slug: r.Identifier, Weight: *r.Weight})
	}
	return entries, nil
}

// SlugList expects a plain list of slugs; every listed slug gets weight 1.
type SlugList struct{}

func (SlugList) Name() string { return "slug_list" }

func (SlugList) Validate(raw any) ([]Entry, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list, got %T", ErrValidation, raw)
	}

	var list slugs
	if err := mapstructure.Decode(items, &list.Root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := validate.Struct(&list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	entries := make([]Entry, 0, len(list.Root))
	for _, slug := range list.Root {
		entries = append(entries, Entry{Slug: slug, Weight: 1})
	}
	return entries, nil
}

func decodeList[T any](raw any) ([]T, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list, got %T", ErrValidation, raw)
	}

	list := listOf[T]{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: wholeNumberHook,
		Result:     &list.Root,
		TagName:    "mapstructure",
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := validate.Struct(&list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return list.Root, nil
}

// wholeNumberHook only lets whole numbers into int fields. Floats with a
// fractional part are rejected instead of truncated; numeric strings and
// floats such as 5.0 are converted.
func wholeNumberHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Int {
		return data, nil
	}

	switch v := data.(type) {
	case float64:
		return wholeNumber(v)
	case float32:
		return wholeNumber(float64(v))
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("expected an integer, got '%s'", v)
		}
		return n, nil
	}
	return data, nil
}

func wholeNumber(f float64) (any, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return nil, fmt.Errorf("expected an integer, got %v", f)
	}
	return int(f), nil
}
