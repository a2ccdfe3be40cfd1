// Command eventpipe runs the event normalization pipeline and inspects its
// artifacts, geocode cache, and run ledger.
package main
