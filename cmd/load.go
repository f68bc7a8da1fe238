package main

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/comunas/internal/comuna"
	"github.com/sells-group/comunas/internal/config"
	"github.com/sells-group/comunas/internal/shapefile"
)

// loadTable opens the configured shapefile and tabulates it.
func loadTable(c *config.Config) (*shapefile.Table, error) {
	sf, err := shapefile.Open(c.Shapefile.Path, c.Shapefile.Encoding)
	if err != nil {
		return nil, err
	}
	tbl, err := shapefile.Tabulate(sf)
	if err != nil {
		return nil, eris.Wrapf(err, "tabulate %s", c.Shapefile.Path)
	}
	zap.L().Info("loaded feature table",
		zap.String("path", c.Shapefile.Path),
		zap.Int("features", tbl.Len()),
	)
	return tbl, nil
}

// newResolver builds the name resolver from the configured alias file and
// name column, which must exist in tbl.
func newResolver(c *config.Config, tbl *shapefile.Table) (*comuna.Resolver, error) {
	col := c.Shapefile.NameColumn
	if col == "" {
		col = comuna.DefaultNameColumn
	}
	if !tbl.HasColumn(col) {
		return nil, eris.Errorf("name column %q not in shapefile (fields: %s)",
			col, strings.Join(tbl.Fields(), ", "))
	}

	var aliases comuna.Aliases
	if c.Names.AliasesFile != "" {
		a, err := comuna.LoadAliases(c.Names.AliasesFile)
		if err != nil {
			return nil, err
		}
		aliases = a
	}
	return comuna.NewResolver(aliases, col), nil
}

// resolveTargets turns command arguments into feature indexes. Arguments
// that parse as integers are taken as indexes; anything else is a name.
func resolveTargets(tbl *shapefile.Table, r *comuna.Resolver, args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		if n, err := strconv.Atoi(strings.TrimSpace(a)); err == nil {
			if n < 0 || n >= tbl.Len() {
				return nil, eris.Errorf("feature %d out of range [0,%d)", n, tbl.Len())
			}
			ids = append(ids, n)
			continue
		}
		idx, err := r.ResolveIndex(tbl, a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, idx)
	}
	return ids, nil
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
