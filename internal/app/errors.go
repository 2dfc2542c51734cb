package app

import "errors"

var (
	ErrUnauthorized     = errors.New("login required")
	ErrForbidden        = errors.New("only the pet owner can do that")
	ErrSelfAdoption     = errors.New("you cannot adopt your own pet")
	ErrPetNotFound      = errors.New("pet not found")
	ErrAlreadyAdopted   = errors.New("pet is already adopted")
	ErrDuplicateRequest = errors.New("you already have a pending request for this pet")
	ErrRequestNotFound  = errors.New("no pending adoption request from that user")
	ErrRateLimited      = errors.New("too many login attempts, try again later")
	ErrInvalidInput     = errors.New("invalid input")
)
