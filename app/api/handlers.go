package api

import (
	"koronvoice/app/service/personality"

	"github.com/gofiber/fiber/v2"
)

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

type synthesizeRequest struct {
	Text string `json:"text" validate:"required"`
}

type resetResponse struct {
	Message     string               `json:"message"`
	Personality personality.Snapshot `json:"personality"`
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := s.parseBody(c, &req, "message is required"); err != nil {
		return err
	}

	result, err := s.chat.Chat(c.UserContext(), req.Message)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func (s *Server) handleSynthesize(c *fiber.Ctx) error {
	var req synthesizeRequest
	if err := s.parseBody(c, &req, "text is required"); err != nil {
		return err
	}

	audio, err := s.speech.Synthesize(c.UserContext(), req.Text)
	if err != nil {
		return err
	}

	c.Attachment("speech.mp3")
	c.Type("mp3")

	return c.Send(audio)
}

func (s *Server) handleReset(c *fiber.Ctx) error {
	return c.JSON(resetResponse{
		Message:     "personality reset",
		Personality: s.chat.Reset(),
	})
}

func (s *Server) handlePersonality(c *fiber.Ctx) error {
	return c.JSON(s.chat.Snapshot())
}

func (s *Server) parseBody(c *fiber.Ctx, out any, missing string) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, missing)
	}

	return nil
}
