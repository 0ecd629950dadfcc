// Package choice models the labelled choices offered by selection widgets and
// renders them into option markup.
//
// A Set is always valid once constructed: values are unique and, when built
// from parallel name/value slices, both slices had the same length. Builders
// in this package are pure functions; the same Set and Selection always yield
// byte-identical markup.
package choice
