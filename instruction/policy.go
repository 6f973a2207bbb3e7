package instruction

import "fmt"

// CategoryPolicy decides how a record's category key is resolved.
type CategoryPolicy interface {
	Resolve(catalog *Catalog, key CategoryKey, logger Logger) (Category, error)
}

// StrictPolicy fails with an unknown_category error for keys outside the catalog.
type StrictPolicy struct{}

func (StrictPolicy) Resolve(catalog *Catalog, key CategoryKey, _ Logger) (Category, error) {
	return catalog.Lookup(key)
}

// FallbackPolicy substitutes Default for missing or unknown keys and logs
// every substitution. RequiredFieldsFor drops kategorie under this policy.
type FallbackPolicy struct {
	Default CategoryKey
}

func (p FallbackPolicy) Resolve(catalog *Catalog, key CategoryKey, logger Logger) (Category, error) {
	if category, err := catalog.Lookup(key); err == nil {
		return category, nil
	}
	fallback, err := catalog.Lookup(p.Default)
	if err != nil {
		return Category{}, NewError(KindUnknownCategory, fmt.Sprintf("fallback category %q is not in the catalog", p.Default), err)
	}
	if logger != nil {
		logger.Infof("category %q not found, using fallback %q", key, p.Default)
	}
	return fallback, nil
}

// PolicyFor returns FallbackPolicy when fallback is set, StrictPolicy otherwise.
func PolicyFor(fallback CategoryKey) CategoryPolicy {
	if fallback == "" {
		return StrictPolicy{}
	}
	return FallbackPolicy{Default: fallback}
}
