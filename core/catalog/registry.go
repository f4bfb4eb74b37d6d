package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/FocuswithJustin/passage/core/errors"
)

// Built-in translation identifiers.
const (
	ESV = "ESV"
	KJV = "KJV"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Catalog)

	esvCatalog = MustNew(ESV, esvLastVerses(), esvMissingVerses)
	kjvCatalog = MustNew(KJV, kjvLastVerses, nil)
)

func init() {
	registry[ESV] = esvCatalog
	registry[KJV] = kjvCatalog
}

// Default returns the ESV catalog.
func Default() *Catalog {
	return esvCatalog
}

// ForTranslation returns the catalog registered under id. Matching is
// case-insensitive.
func ForTranslation(id string) (*Catalog, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if c, ok := registry[strings.ToUpper(id)]; ok {
		return c, nil
	}
	return nil, errors.NewNotFound("catalog", id)
}

// Register adds c to the registry under its id, replacing any catalog with
// the same id except the built-in ones.
func Register(c *Catalog) error {
	if c == nil {
		return errors.NewValidation("catalog", "nil catalog")
	}
	key := strings.ToUpper(c.ID())
	if key == ESV || key == KJV {
		return errors.NewValidation("catalog", "cannot replace built-in catalog "+key)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	registry[key] = c
	return nil
}

// Translations returns the registered ids in sorted order.
func Translations() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
