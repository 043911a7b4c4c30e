package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrDeclarationNotFound = errors.New("declaration not found")
	ErrMissingIdentity     = errors.New("declarant identity could not be extracted")
	ErrSourceUnreadable    = errors.New("source document is missing or unreadable")
	ErrInvalidSource       = errors.New("unsupported source document")
)
