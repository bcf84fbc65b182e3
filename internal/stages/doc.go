// Package stages implements one transform per plan operation.
//
// Apply is the single entry point. Geometric stages (crop, resize,
// rotate) return a new buffer; color stages return a new buffer built with
// a per-pixel function; drawing stages (heal, brush, clone) modify the
// buffer they are given. Callers must therefore treat the input as
// consumed and continue with the returned buffer.
//
// Every stage with an identity setting returns its input untouched when
// given it: rotate 0, filter none, factor 1, temperature 0, blur 0,
// threshold 0, empty text.
package stages
