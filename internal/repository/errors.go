package repository

import "errors"

var (
	ErrNoRowsAffected  = errors.New("no rows affected")
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrMachineExists   = errors.New("machine already exists")
	ErrMachineNotFound = errors.New("machine not found")
	ErrBrandNotFound   = errors.New("brand not found")
)
