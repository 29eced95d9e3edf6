// Package platform wraps the few filesystem calls whose behavior differs
// between Unix and Windows. On Windows permission bits are not applied.
package platform
