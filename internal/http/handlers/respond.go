package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pancakes/admin-service/internal/http/dto"
	"github.com/pancakes/admin-service/internal/middleware"
	"github.com/pancakes/admin-service/internal/workflow"
	"go.uber.org/zap"
)

const messageInvalidBody = "Invalid request body"

func actorFrom(c *fiber.Ctx) workflow.Actor {
	return workflow.Actor{
		ID:        middleware.GetAdminID(c),
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}
}

func writeOutcome(c *fiber.Ctx, out workflow.Outcome) error {
	return c.Status(out.Status).JSON(dto.APIResponse{
		Success: out.Success,
		Message: out.Message,
		Data:    out.Data,
		Errors:  out.Errors,
	})
}

// writeReadError renders a failed read with the same vocabulary the action runner uses.
func writeReadError(c *fiber.Ctx, log *zap.Logger, err error, notFound string) error {
	d := workflow.Classify(err)
	switch d.Kind {
	case workflow.KindValidation:
		var verr *workflow.ValidationError
		errors.As(err, &verr)
		return c.Status(d.Status).JSON(dto.Fail(workflow.MessageValidationFailed, verr.Errors...))
	case workflow.KindNotFound:
		return c.Status(d.Status).JSON(dto.Fail(notFound))
	case workflow.KindForbidden:
		return c.Status(d.Status).JSON(dto.Fail(workflow.MessageForbidden))
	case workflow.KindFailed:
		return c.Status(d.Status).JSON(dto.Fail("The request was rejected"))
	default:
		log.Error("read request failed",
			zap.String("path", c.Path()),
			zap.String("admin_id", middleware.GetAdminID(c)),
			zap.Error(err),
		)
		return c.Status(d.Status).JSON(dto.Fail(workflow.MessageUnexpected))
	}
}

func badRequest(c *fiber.Ctx, errs ...string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(workflow.MessageValidationFailed, errs...))
}

// parseBody tolerates an empty body so path-only actions (unban) need no payload.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}

func queryInt(c *fiber.Ctx, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// queryTime accepts RFC 3339 or a plain date.
func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("invalid " + key)
}
