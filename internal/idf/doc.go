// Package idf inspects an ESP-IDF installation: where it lives and which
// release it is, so the generated projects can be checked against the
// minimum IDF version the port supports.
package idf
