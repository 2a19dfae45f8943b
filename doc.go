// Package bos implements BOS, a compact binary encoding for JSON-like
// values (null, booleans, fixed-width integers and floats, strings, raw
// byte blobs, arrays, objects). It is a denser drop-in for textual JSON in
// storage and transport paths.
//
// Components:
//   - Deserialize: envelope -> value tree, every read bounds-checked
//     against the declared size, nesting capped at Decoder.MaxDepth.
//   - Valid: structural verdict over the same grammar without building a
//     tree; strict about unknown type tags.
//   - Serialize: value tree -> envelope, minimal-width integers and
//     varints.
//   - DeclaredSize: O(1) advisory read of the 4-byte size header.
//
// Wire format (all integers little-endian):
//
//	u32 total size (includes these 4 bytes) | [tag: u8][payload]
//
// Lengths and counts use a self-describing uvarint: one byte for 0..252,
// or 0xFD/0xFE/0xFF followed by a 16/32/64-bit little-endian value.
//
// Validation before decoding is optional: Deserialize is itself safe on
// untrusted bytes. Note the one deliberate asymmetry, kept for
// compatibility with existing producers: tags above 0x0F decode to null
// unless Decoder.StrictTags is set, while Valid always rejects them.
//
// Subpackages: value (the tree model), codecs (transcoding to CBOR, JSON,
// MsgPack and protobuf Struct), store (a validated document store over
// pluggable byte providers).
package bos
