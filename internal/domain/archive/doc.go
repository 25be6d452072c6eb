// Package archive contains the plain data types shared by the archiver:
// exclusion rules, written entries, manifest checks and the run summary.
package archive
