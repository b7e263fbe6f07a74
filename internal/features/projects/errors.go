package projects

import (
	"fmt"
	"net/http"
)

// Kind enumerates the domain failures of the projects feature.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindSlugExists
	KindAccessDenied
)

func (k Kind) Code() string {
	switch k {
	case KindNotFound:
		return "PROJECT_NOT_FOUND"
	case KindSlugExists:
		return "PROJECT_SLUG_EXISTS"
	case KindAccessDenied:
		return "PROJECT_ACCESS_DENIED"
	default:
		return "PROJECT_ERROR"
	}
}

func (k Kind) StatusCode() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindSlugExists:
		return http.StatusConflict
	case KindAccessDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// ProjectError is a domain failure carrying the id or slug it concerns.
// The repository never returns one; the service builds them from result
// shapes and storage faults.
type ProjectError struct {
	Kind       Kind
	Identifier string
}

var (
	ErrNotFound     = &ProjectError{Kind: KindNotFound}
	ErrSlugExists   = &ProjectError{Kind: KindSlugExists}
	ErrAccessDenied = &ProjectError{Kind: KindAccessDenied}
)

func NewNotFoundError(identifier string) *ProjectError {
	return &ProjectError{Kind: KindNotFound, Identifier: identifier}
}

func NewSlugExistsError(slug string) *ProjectError {
	return &ProjectError{Kind: KindSlugExists, Identifier: slug}
}

func NewAccessDeniedError(projectID string) *ProjectError {
	return &ProjectError{Kind: KindAccessDenied, Identifier: projectID}
}

func (e *ProjectError) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("Project not found: %s", e.Identifier)
	case KindSlugExists:
		return fmt.Sprintf("Project slug already exists: %s", e.Identifier)
	case KindAccessDenied:
		return fmt.Sprintf("Access denied to project: %s", e.Identifier)
	default:
		return fmt.Sprintf("project error: %s", e.Identifier)
	}
}

func (e *ProjectError) Code() string { return e.Kind.Code() }

func (e *ProjectError) StatusCode() int { return e.Kind.StatusCode() }

// Is matches on Kind, and on Identifier when the target carries one, so
// errors.Is(err, ErrNotFound) holds for every not-found error.
func (e *ProjectError) Is(target error) bool {
	t, ok := target.(*ProjectError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Identifier == "" || t.Identifier == e.Identifier)
}
