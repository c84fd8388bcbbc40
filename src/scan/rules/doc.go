// Package rules contains the built-in pattern checks.
// Import this package to register them via their init() functions.
package rules
