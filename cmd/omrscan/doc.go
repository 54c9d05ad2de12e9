// Command omrscan reads scanned answer sheets from the command line.
//
// It scans one or more images with a sheet profile, printing a table on a
// terminal and JSON otherwise, reports which optional backends the binary
// was built with, and writes an annotated sample profile.
package main
