// Package samples contains example scenarios for the harness, run against the NuGet gallery.
package samples
