package room

import "errors"

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomAlreadyExists  = errors.New("room already exists")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrSeqConflict        = errors.New("room seq conflict")
)
