package service

import "errors"

// Failure taxonomy for the voting and acceptance workflows. Handlers map
// these onto HTTP status codes; none of them is retried.
var (
	ErrUnauthenticated  = errors.New("you must be logged in to do that")
	ErrForbidden        = errors.New("you do not have permission to do that")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrInvalidTarget    = errors.New("invalid vote target")
)
