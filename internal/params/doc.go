// Package params turns raw edit options into a validated, ordered Plan.
//
// Every tool accepts a compact textual encoding: comma-separated numbers
// for positions and regions, or a single scalar. Normalize parses and
// clamps all of them up front, so a malformed value aborts the run before
// any image is decoded and no stage ever sees unvalidated input.
//
// Operations are a closed set of variants, one struct per stage. A Plan
// always lists them in canonical order, whatever order the options were
// given in:
//
//	crop, resize, rotate, filter, brightness, contrast, saturation,
//	temperature, blur, heal, brush, sharpen, text, background-remove,
//	clone, sticker
//
// Exposure is folded into the brightness factor and has no stage of its own.
package params
