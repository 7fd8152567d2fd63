// Package validation implements declarative per-field request rules and the
// Fiber middleware that aggregates their violations.
//
// A route declares an ordered list of rules. Chain evaluates every rule
// against the route parameters and the JSON body, and when any check fails it
// answers 400 with all violations in declaration order; the route handler is
// never reached. Checks on one field are independent of each other, so a
// single malformed value can produce several violations.
package validation
