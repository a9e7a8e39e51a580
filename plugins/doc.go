// Package plugins hosts data contributor subpackages. It contains no runtime
// code itself; the architecture guard living alongside it keeps every
// contributor limited to the public protocolapi types.
package plugins
