// Package comuna resolves human-entered comuna names to feature table rows.
package comuna

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/comunas/internal/shapefile"
)

// DefaultNameColumn is the shapefile attribute holding the comuna name.
const DefaultNameColumn = "NOM_COMUNA"

// ErrNotFound is returned when no row matches a requested name.
var ErrNotFound = eris.New("comuna: not found")

// Resolver maps names to row indexes of a feature table.
type Resolver struct {
	Aliases    Aliases
	NameColumn string
}

// NewResolver returns a Resolver using aliases and the given name column.
// A nil alias table uses DefaultAliases; an empty column uses
// DefaultNameColumn.
func NewResolver(aliases Aliases, nameColumn string) *Resolver {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	if nameColumn == "" {
		nameColumn = DefaultNameColumn
	}
	return &Resolver{Aliases: aliases, NameColumn: nameColumn}
}

// Normalize converts a display name to the form stored in the table: the
// alias table is consulted once, then the result is uppercased.
func (r *Resolver) Normalize(name string) string {
	return toUpper(r.Aliases.Canonical(name))
}

// ResolveIndex returns the index of the first row whose name column equals
// the normalized name.
func (r *Resolver) ResolveIndex(table *shapefile.Table, name string) (int, error) {
	key := r.Normalize(name)

	idx, err := table.Index(r.NameColumn, key)
	if err != nil {
		return -1, eris.Wrap(err, "comuna: resolve")
	}
	if idx < 0 {
		return -1, eris.Wrapf(ErrNotFound, "%q (looked up as %q)", name, key)
	}

	zap.L().Debug("comuna: resolved",
		zap.String("name", name),
		zap.String("key", key),
		zap.Int("index", idx),
	)
	return idx, nil
}

// ResolveAll resolves every name in order. It fails on the first name that
// has no match and returns no partial result.
func (r *Resolver) ResolveAll(table *shapefile.Table, names []string) ([]int, error) {
	ids := make([]int, len(names))
	for i, n := range names {
		idx, err := r.ResolveIndex(table, n)
		if err != nil {
			return nil, err
		}
		ids[i] = idx
	}
	return ids, nil
}
