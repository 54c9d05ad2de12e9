// Package layout arranges detected bubbles into numbered question rows.
//
// A [Resolver] takes the unordered bubble regions of one sheet and produces
// a [Layout]:
//
//	resolver := layout.NewResolver()
//	grid := resolver.Resolve(regions, 30)
//	for _, row := range grid.Rows {
//	    fmt.Println(row.Question, len(row.Regions))
//	}
//
// # Columns
//
// When the left edges of the bubbles spread wider than
// [Config.ColumnThreshold] the sheet is treated as two physical columns,
// split at the midpoint of that spread. A spread of exactly the threshold is
// still one column.
//
// # Rows
//
// Within a column, bubbles are walked top to bottom and chained into the
// same row while consecutive tops differ by less than [Config.RowTolerance].
// Each row is then ordered left to right, which fixes the option order.
//
// # Numbering
//
// Left column rows are numbered from 1. Right column rows continue from
// LeftColumnQuestions+1, where the left column size comes from the
// configuration, from half the expected question count, or from the number
// of left rows found, in that order of preference. Rows with fewer than
// [Config.MinOptions] bubbles are discarded before numbering and rows whose
// number falls outside their column's range are dropped. Both leave a note
// on the layout.
//
// Resolution is deterministic: the same regions always produce the same
// rows.
package layout
