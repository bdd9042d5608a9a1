package model

import (
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrEmptyDataset = goerr.New("dataset has no records")
)

// Record is one guessable entity: an identifier and a value (0 or 1) for every trait
type Record struct {
	ID     string
	Traits map[string]int
}

// Value returns the trait value and whether the record carries the trait
func (r *Record) Value(trait string) (int, bool) {
	v, ok := r.Traits[trait]
	return v, ok
}

// Dataset is a validated, read-only collection of records sharing one trait set.
// Traits keeps the source column order, which decides split tie-breaks.
type Dataset struct {
	IdentifierKey string
	Traits        []string
	Records       []*Record
}

// Validate checks that every record carries exactly the dataset traits with binary values
func (d *Dataset) Validate() error {
	if d.IdentifierKey == "" {
		return goerr.New("identifier key is empty")
	}
	if len(d.Records) == 0 {
		return ErrEmptyDataset
	}

	known := make(map[string]struct{}, len(d.Traits))
	for _, t := range d.Traits {
		if t == "" {
			return goerr.New("trait name is empty")
		}
		if _, dup := known[t]; dup {
			return goerr.New("duplicated trait", goerr.V("trait", t))
		}
		known[t] = struct{}{}
	}

	for i, r := range d.Records {
		if len(r.Traits) != len(d.Traits) {
			return goerr.New("record trait set differs from dataset",
				goerr.V("index", i), goerr.V("id", r.ID))
		}
		for name, v := range r.Traits {
			if _, ok := known[name]; !ok {
				return goerr.New("unknown trait in record",
					goerr.V("index", i), goerr.V("id", r.ID), goerr.V("trait", name))
			}
			if v != 0 && v != 1 {
				return goerr.New("trait value must be 0 or 1",
					goerr.V("index", i), goerr.V("id", r.ID), goerr.V("trait", name), goerr.V("value", v))
			}
		}
	}

	return nil
}
