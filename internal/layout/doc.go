// Package layout packs dashboard widgets into a column grid.
//
// Everything here is a pure function of its inputs: Pack turns an ordered id
// list, a size map and a column count into placements, and Breakpoints turns
// a viewport width into a column count.
package layout
