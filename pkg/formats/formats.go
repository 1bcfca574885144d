// Package formats provides parsers for the 3D asset formats the viewer imports.
package formats
