// Package storage persists downloaded documents and rebuilds the index of
// documents already on disk.
//
// The filename convention {case}_{documentID}_{date}.pdf is the resume
// contract: Scan parses it back to find which document ids exist, so a
// document saved by any earlier run is never downloaded again.
//
// Layout:
//
//	downloads/
//	  order_2024-03-01_101500/
//	    12345-21_0d9f..._2023-01-01.pdf
//	    12345-21_0d9f..._2023-01-01.json
//
// Temporary .tmp files left by an interrupted write do not match the
// convention and are ignored by Scan.
package storage
