// Package pixel provides the in-memory RGBA raster every upgrade stage
// operates on.
//
// A [Buffer] has a fixed width and height and is always fully populated:
// one non-premultiplied 8-bit [RGBA] value per pixel, stored row-major.
// Buffers are created by decoding a PNG ([Decode], [Load]) or with [New],
// and written back with [Encode] or [Save]. There is no resize operation;
// stages that receive buffers of different sizes treat it as a programming
// error (see [MustMatch]).
//
// Color channels of fully transparent pixels are kept exactly as decoded.
// The codec never premultiplies, so stale RGB under alpha 0 survives a
// decode/encode round trip.
package pixel
