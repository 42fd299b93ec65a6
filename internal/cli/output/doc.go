// Package output renders tokmint-cli results as a table, JSON or YAML.
//
// Tables are derived from struct slices by reflection. Column headers come
// from json tags; fields tagged `table:"wide"` appear only in wide mode and
// fields tagged `table:"-"` never do.
package output
