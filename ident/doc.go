// Package ident reads and writes the identifier printed on an answer sheet.
//
// The identifier ties a sheet to an assessment and to the person who sat it.
// It is a short ASCII string of dash separated tokens, each a one letter
// prefix followed by a decimal id:
//
//	A34-M559    assessment 34, enrollment 559
//	A15-U102    assessment 15, legacy identity 102
//
// [Encode] and [EncodeLegacy] build the string, [Parse] reads it back. Parse
// is lenient: tokens it does not understand are collected in
// [Reference.Skipped] instead of failing the sheet.
//
// [Decode] finds and decodes the QR code that carries the identifier. A
// [Reader] adds an optional fallback that recognises the printed form of the
// identifier when the QR code is damaged.
package ident
