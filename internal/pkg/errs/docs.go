// Package errs provides standardized error types for the quote aggregation
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package includes validation errors shared by value objects and
// commands, plus the aggregation-specific taxonomy:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     input validation failures, surfaced before any carrier dispatch
//   - ObjectNotFoundError: lookups that matched nothing
//   - LocationNotFoundError: a location string the resolution step could
//     not map to a city; fatal for the whole request when raised by the
//     shared step
//   - CarrierUnavailableError: one carrier's transport, auth or parsing
//     failure, contained at the adapter boundary
//   - CredentialError: a failed credential lookup or token exchange,
//     treated as a per-carrier failure
//   - NoQuotesAvailableError: raised only when every carrier failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrCarrierUnavailable)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach keeps error classification explicit: handlers
// decide the HTTP status with errors.Is against the sentinels.
package errs
