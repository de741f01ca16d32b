package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("username or email already exists")

	// Category errors
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryNotEmpty = errors.New("category has threads or child categories")
	ErrCategoryExists   = errors.New("category with this name already exists")

	// Thread errors
	ErrThreadNotFound = errors.New("thread not found")
	ErrThreadLocked   = errors.New("thread is locked")
	ErrThreadNotEmpty = errors.New("thread has posts")

	// Post errors
	ErrPostNotFound       = errors.New("post not found")
	ErrParentPostNotFound = errors.New("parent post not found")

	// Reaction errors
	ErrReactionExists   = errors.New("user already reacted to this post")
	ErrReactionNotFound = errors.New("reaction not found")

	// Tag errors
	ErrTagNotFound = errors.New("tag not found")
	ErrTagExists   = errors.New("tag with this name already exists")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
