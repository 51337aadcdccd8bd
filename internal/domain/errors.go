package domain

import "errors"

// Authentication failure kinds. Handlers branch on these with errors.Is;
// the validator never reports why signature verification failed, so expired
// and forged tokens both surface as ErrUnauthenticated.
var (
	ErrUnauthenticated = errors.New("session expired or not logged in")
	ErrUserNotFound    = errors.New("user not found")
	ErrStaleSession    = errors.New("session not found")
	ErrNotVerified     = errors.New("user is not verified")
)

// Classroom errors
var (
	ErrClassroomNotFound = errors.New("classroom not found")
	ErrClassroomArchived = errors.New("classroom is archived")
	ErrNotClassroomOwner = errors.New("only the classroom owner can perform this action")
	ErrAlreadyMember     = errors.New("user is already a classroom member")
	ErrNotMember         = errors.New("user is not a classroom member")
)

// Course and practice errors
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseNotPublished  = errors.New("course is not published")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrPracticeSetNotFound = errors.New("practice set not found")
	ErrNotAuthor           = errors.New("only the author can perform this action")
	ErrInvalidScore        = errors.New("score must be between 0 and 100")
)

// Billing errors
var (
	ErrPlanNotFound           = errors.New("plan not found")
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrSubscriptionNotFound   = errors.New("subscription not found")
	ErrSubscriptionNotActive  = errors.New("no active subscription")
	ErrSubscriptionOverlap    = errors.New("an active subscription already exists")
	ErrPaymentAlreadySettled  = errors.New("payment is already settled")
)

// Messaging errors
var (
	ErrMessageNotFound  = errors.New("message not found")
	ErrMessageForbidden = errors.New("message participants must share a classroom")
)
