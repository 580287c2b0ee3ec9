// Package internaldefs exposes stable metric name definitions shared by
// exporter implementations.
//
// Counter and histogram definitions live here so that the Prometheus and
// OTel exporters share identical metric names and bucket boundaries.
//
// # What this package must NOT do
//
//   - Import sessionauth or any exporter package.
//   - Perform I/O.
package internaldefs
