package server

import (
	"github.com/gofiber/fiber/v2"
)

// ToggleLike flips the caller's like on a post and returns the resulting
// state. Sending the same request twice lands back where it started.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	state, err := s.interactionService.ToggleLike(c.UserContext(), userID, postID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(state)
}

// CheckLikeStatus reports whether the caller likes the post along with the
// current count. Works without authentication; anonymous callers always get
// hasLiked false. Never changes the ledger.
func (s *Server) CheckLikeStatus(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	state, err := s.interactionService.LikeStatus(c.UserContext(), userID, postID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(state)
}
