// Package diagnostic provides structured errors, warnings and info messages
// produced while resolving and validating auto-assigned fields.
//
// Key capabilities:
//   - Stable codes per outcome (not found, ambiguous, field error, ...)
//   - Owner and field identity on every message
//   - Sinks: a collector for reports and tests, a zap-backed log sink
//     tagged with a fixed source prefix, and a tee
package diagnostic
