// Package codec provides the on-media encoding of option records.
//
// Every option record is a fixed-layout Go struct made only of fixed-size
// fields (bool, uintN, intN and arrays of those). Its slot blob is the
// little-endian encoding of the fields in declaration order, with no padding:
//
//	AnimationOptions: [Checksum(4)][Base(1)][Brightness(1)][Static(1)][Button(1)][Chase(2)][Rainbow(2)][Theme(1)]
//
// The blob size is known from the type alone, so a record always occupies
// the same number of bytes of its slot.
//
// # Checksum
//
// Checksum-validated records carry a 32-bit CRC (IEEE polynomial) inside the
// record itself. The digest is computed over the whole blob with the checksum
// field zeroed:
//
//	sum := codec.SealChecksum(blob, 0) // zeroes the field, hashes, stores sum
//	ok := codec.OpenChecksum(blob, 0)  // extracts, zeroes, rehashes, compares
//
// A blank blob (all zero) hashes to a well-defined value that differs from
// the zero stored in its checksum field, so blank memory never validates.
//
// # Usage
//
//	c, err := codec.NewRecordCodec[options.AnimationOptions]()
//	if err != nil {
//	    return err // not a fixed-size type
//	}
//	blob, err := c.Encode(opts)
//	...
//	opts, err = c.Decode(blob)
//
// RecordCodec values hold no mutable state and are safe for concurrent use.
package codec
