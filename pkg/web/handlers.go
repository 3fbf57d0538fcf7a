package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/inspectra/go-scopecam/pkg/hardware"
	"github.com/inspectra/go-scopecam/pkg/param"
)

func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(StatusResponse{
		Mode:    string(s.eng.Mode()),
		Clients: s.stateHub.ClientCount(),
	})
}

func (s *Server) handleGetParams(c *fiber.Ctx) error {
	return c.JSON(s.eng.Snapshot())
}

func (s *Server) handleSetParam(c *fiber.Ctx) error {
	id, err := param.IDOf(c.Params("name"))
	if err != nil {
		return errorJSON(c, fiber.StatusNotFound, err)
	}

	var req SetParamRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	switch {
	case id.IsModeToggle():
		if req.Auto == nil {
			return errorJSON(c, fiber.StatusBadRequest,
				errors.New("mode toggle requires an auto field"))
		}
		err = s.eng.SetAuto(id, *req.Auto)
	case req.Value != nil:
		err = s.eng.SetValue(id, *req.Value)
	default:
		return errorJSON(c, fiber.StatusBadRequest,
			errors.New("value field required"))
	}

	if err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.JSON(s.eng.Snapshot())
}

func (s *Server) handleReset(c *fiber.Ctx) error {
	if err := s.eng.Reset(); err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.JSON(s.eng.Snapshot())
}

// handlePull is the external "parameter changed" notification: an
// immediate pull cycle outside the timer cadence.
func (s *Server) handlePull(c *fiber.Ctx) error {
	s.eng.Pull()
	return c.JSON(s.eng.Snapshot())
}

func (s *Server) handleSetMode(c *fiber.Ctx) error {
	var req SetModeRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	switch mode := hardware.Mode(req.Mode); mode {
	case hardware.ModeNone, hardware.ModeSingle, hardware.ModeStereo:
		s.eng.SetMode(mode)
		return c.JSON(s.eng.Snapshot())
	default:
		return errorJSON(c, fiber.StatusBadRequest,
			errors.New("mode must be none, single or stereo"))
	}
}

func (s *Server) handleCycleExposure(c *fiber.Ctx) error {
	label, err := s.eng.CycleExposurePreset()
	if err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.JSON(fiber.Map{"state": label})
}

func errorJSON(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
}

// statusFor maps engine error kinds to HTTP statuses. Write rejections
// are conflicts, not client errors: the request was well-formed and the
// hardware said no.
func statusFor(err error) int {
	switch {
	case errors.Is(err, param.ErrUnknownParameter):
		return fiber.StatusNotFound
	case errors.Is(err, param.ErrUnsupported):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, param.ErrNoCamera):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, param.ErrWriteRejected), errors.Is(err, param.ErrPartialStereoWrite):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}
