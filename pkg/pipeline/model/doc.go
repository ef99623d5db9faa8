// Package model provides the data structures shared by the pipeline packages.
// It defines stage categories, position specifiers, configuration entries,
// resolved stages and the hooks a pipeline option implements.
package model
