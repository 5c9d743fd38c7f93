package storage

import "errors"

var (
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagSlugTaken     = errors.New("tag slug already exists")
	ErrPostNotFound     = errors.New("post not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrProviderNotFound = errors.New("ai provider not found")
)
