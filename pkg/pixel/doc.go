// Package pixel defines the flat 4-channel buffer layout shared by the
// filter and transform packages.
//
// A buffer is a []byte of width*height*4 bytes in row-major order. Each pixel
// is four consecutive bytes; the first three are color channels in any order
// and the fourth is an opaque payload (usually alpha) that is never
// reinterpreted.
package pixel
