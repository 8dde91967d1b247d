package domain

import "errors"

// Domain errors
var (
	ErrNameTaken     = errors.New("username already taken")
	ErrRoomNameTaken = errors.New("room name already taken")
	ErrRoomFull      = errors.New("room is full")
	ErrRoomNotFound  = errors.New("room not found")
	ErrNoCurrentRoom = errors.New("connection is not in a room")
)
