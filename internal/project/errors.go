package project

import "errors"

var (
	// ErrTemplateNotFound is returned when an embedded template is missing.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidExampleName is returned for example names that cannot be
	// used verbatim in Make and CMake files.
	ErrInvalidExampleName = errors.New("invalid example name")
)
