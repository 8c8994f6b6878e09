package order

import (
	"foodcourt/internal/pkg/errs"
	"foodcourt/internal/pkg/guard"
)

const (
	// RatingScoreMin is the lowest accepted rating score.
	RatingScoreMin = 1
	// RatingScoreMax is the highest accepted rating score.
	RatingScoreMax = 5
	// RatingCommentMaxLen is the maximum accepted comment length in characters.
	RatingCommentMaxLen = 1000
)

// ErrRatingIsNotConstructed is returned when a Rating was not created via NewRating.
var ErrRatingIsNotConstructed = errs.NewValueIsRequiredError(
	"rating must be created via NewRating constructor")

// Rating is a customer's one-time evaluation of a closed order.
type Rating struct { //nolint:recvcheck //using for validation
	score   int
	comment string

	guard guard.ConstructorGuard
}

// NewRating creates a validated rating.
// Score must lie within [RatingScoreMin, RatingScoreMax]; the optional
// comment may not exceed RatingCommentMaxLen characters.
func NewRating(score int, comment string) (Rating, error) {
	if score < RatingScoreMin || score > RatingScoreMax {
		return Rating{}, errs.NewValueIsOutOfRangeError("score", score, RatingScoreMin, RatingScoreMax)
	}
	if len([]rune(comment)) > RatingCommentMaxLen {
		return Rating{}, errs.NewValueIsOutOfRangeError("comment length",
			len([]rune(comment)), 0, RatingCommentMaxLen)
	}

	return Rating{
		score:   score,
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the rating was created through the constructor.
func (r Rating) Validate() error {
	return r.guard.Validate(ErrRatingIsNotConstructed)
}

// Score returns the rating score in [1, 5].
func (r Rating) Score() int {
	return r.score
}

// Comment returns the optional free-text comment.
func (r Rating) Comment() string {
	return r.comment
}
