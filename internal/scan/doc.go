// internal/scan/doc.go

// Package scan materializes the scanner's system list.
//
// Systems live in device memory as a doubly linked chain. ScanSettings.Load
// walks that chain from its head inside programming mode and replaces the
// stored collection only when the whole walk succeeded.
package scan
