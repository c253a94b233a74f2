package review

import "errors"

var (
	ErrReviewNotFound        = errors.New("review not found")
	ErrAlreadyCommitted      = errors.New("review is already committed")
	ErrNotCommitted          = errors.New("review is not committed")
	ErrCommittedReviewExists = errors.New("a committed review already exists for this week")
	ErrDraftExists           = errors.New("a draft review already exists for this week")
	ErrNotAuthor             = errors.New("only the author can modify this review")
	ErrReviewImmutable       = errors.New("committed reviews cannot be edited")
	ErrInvalidWeekEnding     = errors.New("review_date must be a week-ending Friday")
	ErrSelfOnly              = errors.New("self-reflections can only be written for yourself")
	ErrNoEmployeeRecord      = errors.New("no employee record is linked to this account")
)
