// Package cli implements the overlaygen command: one required
// positional configuration path, an optional output override, and the
// generation pipeline behind them. Success prints a one-line summary;
// every failure exits with the same non-zero code and a descriptive
// message on stderr.
package cli
