// Package ndarray provides the small n-dimensional array model used for
// SOFA field values.
//
// An Array holds flat row-major data of one element kind (float, int,
// complex or string) plus a shape. Arrays are immutable: every operation
// returns a new Array and accessors return copies. Only the shape
// manipulations needed by the verification engine are implemented
// (promotion to a minimum number of dimensions, trailing padding, squeeze,
// reshape and moveaxis).
package ndarray
