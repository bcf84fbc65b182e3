// Package imaging is the raster buffer used by the edit pipeline.
//
// Every pipeline stage works on an *image.NRGBA: 8-bit, non-premultiplied
// RGBA with its bounds anchored at (0,0). This package owns the operations
// that create, replace or combine those buffers: decoding and encoding
// files, cropping, resizing, rotating, alpha compositing and masked
// pasting. It also keeps the inspection helpers (image cache, metadata,
// pixel sampling) used by the MCP server.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Regions may extend past the image edges. Crop pads the missing area with
// transparent black and the drawing helpers clip to the destination bounds.
//
// # Clamping
//
// Functions here never rescale channel values. Stages that multiply or
// shift channels clamp their own results to [0,255], because each stage
// clamps a different combined expression.
//
// # Error Handling
//
// Decode failures are reported as *DecodeError and output failures as
// *IOError so callers can tell them apart with errors.As. Encode writes to
// a temporary file next to the destination and renames it into place, so
// a failed run never leaves a partial output file behind.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The buffer operations
// are not: a buffer belongs to one pipeline run at a time.
package imaging
