package models

import "fmt"

// ValidationError indicates a required field was missing or blank.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// FormatError indicates a field was present but could not be parsed.
type FormatError struct {
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// UnrecognizedConditionError carries condition text that matched neither the
// used nor the new pattern.
type UnrecognizedConditionError struct {
	Text string
}

func (e *UnrecognizedConditionError) Error() string {
	return fmt.Sprintf("%q is not recognized as a vehicle condition", e.Text)
}

// UnsupportedProviderError indicates a file whose shape matches no known
// provider export, either by extension or by column count.
type UnsupportedProviderError struct {
	Columns int
	Ext     string
}

func (e *UnsupportedProviderError) Error() string {
	if e.Ext != "" {
		return fmt.Sprintf("%s files are not a supported import type", e.Ext)
	}
	return fmt.Sprintf("data source with %d columns is unsupported or cannot be determined", e.Columns)
}

// UnknownDealerError indicates a row referenced a dealer that has not been
// configured.
type UnknownDealerError struct {
	Name string
}

func (e *UnknownDealerError) Error() string {
	return fmt.Sprintf("no dealer configuration found for %q", e.Name)
}

// DuplicateNameError indicates a dealer name collision. Names are unique
// case-insensitively.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("a dealer named %q already exists", e.Name)
}

// InvalidChargeTypeError signals a programming error: a charge carried a type
// outside the known set.
type InvalidChargeTypeError struct {
	Type ChargeType
}

func (e *InvalidChargeTypeError) Error() string {
	return fmt.Sprintf("invalid charge type %q", string(e.Type))
}

// StorageError wraps a persistence read/write failure.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
