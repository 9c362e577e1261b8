// Package options defines the fixed-layout option records persisted by the
// controller and the firmware defaults applied when a record is absent.
//
// Every record type is a plain struct of fixed-size fields, so its on-media
// size is known at compile time (see package codec). Field order is part of
// the storage format and must not change.
package options
