package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")

	ErrHabitNotFound    = errors.New("habit doesn't exist")
	ErrUserHasHabit     = errors.New("user already has habit with such title")
	ErrWrongOwner       = errors.New("entity belongs to different user")
	ErrInvalidFrequency = errors.New("invalid frequency settings")
	ErrCheckExist       = errors.New("check for this date already exists")
	ErrCheckNotFound    = errors.New("check for this date doesn't exist")

	ErrGoalNotFound = errors.New("goal doesn't exist")

	ErrOwnerNotFound = errors.New("owner of entity doesn't exist")
	ErrInvalidToken  = errors.New("invalid token")
)
