// Package project generates one ESP-IDF project directory per BTstack
// embedded example. Each project gets a Makefile and CMakeLists.txt rendered
// from embedded templates, copies of the port's sdkconfig and set_port.sh,
// and a main/ component holding the generic entry point, the example source,
// any audio companion sources and, when the example ships a .gatt file, the
// rules that compile it into a header.
//
// Generation is destructive per example: an existing project directory is
// removed before it is rebuilt, so re-running always yields a clean tree.
package project
