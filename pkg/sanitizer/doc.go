// Package sanitizer normalizes free-form booking input before it reaches
// validation and storage.
//
// All functions are idempotent and never fail: invalid input comes back
// trimmed or empty rather than as an error.
//
// Normalization includes:
//   - Names and providers: collapse internal whitespace, trim the ends
//   - Match keys: the same, lower cased, for case-insensitive comparison
//   - Requests: every string field of the booking requests run through the above
package sanitizer
