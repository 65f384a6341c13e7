// Package dataset defines the tabular dataset written into spreadsheets:
// named columns plus string rows, with CSV loading and A1 reference helpers.
package dataset
