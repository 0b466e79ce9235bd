package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// UserErrors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUserInactive      = errors.New("user account is inactive")
)

// AttendanceErrors
var (
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrDayAlreadyComplete = errors.New("work day already completed today")
	ErrAlreadyCheckedOut  = errors.New("record already has a check-out")
	ErrRecordNotFound     = errors.New("attendance record not found")
	ErrOutsideWorkHours   = errors.New("outside permitted work hours")
	ErrOutsideGeofence    = errors.New("outside office geofence")
)
