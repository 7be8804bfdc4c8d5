// Package sanitizer normalizes text that comes out of the booking store before
// it is shown to people, either in JSON listings or drawn into PDF documents.
//
// All functions are idempotent and never fail: input that cannot be improved
// is returned in its original form.
//
// Normalization includes:
//   - Phone numbers: E.164 (+[country][number]) when the number parses and is valid
//   - Strings: collapse whitespace, trim leading/trailing spaces
//   - Plain text: strip markup, unescape entities, then collapse whitespace
package sanitizer
