package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/dto"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/services"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

const streamKeepAlive = 15 * time.Second

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	reports, err := h.reports.List(c.UserContext(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReportListResponse{Reports: reports, Count: len(reports)})
}

// ForRoute lists recent reports near either end of a trip.
func (h *ReportHandler) ForRoute(c *fiber.Ctx) error {
	hours, _ := strconv.Atoi(c.Query("hours", "24"))
	minScore, _ := strconv.Atoi(c.Query("min_score", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit > 50 {
		limit = 50
	}

	reports, err := h.reports.ForRoute(c.UserContext(), services.RouteQuery{
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
		Hours:       hours,
		MinScore:    minScore,
		Limit:       limit,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReportListResponse{Reports: reports, Count: len(reports)})
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	report, err := h.reports.Create(c.UserContext(), session.FromFiber(c), services.CreateReportInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReportHandler) Upvote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid report ID")
	}
	report, err := h.reports.ToggleUpvote(c.UserContext(), session.FromFiber(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) Downvote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid report ID")
	}
	report, err := h.reports.ToggleDownvote(c.UserContext(), session.FromFiber(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid report ID")
	}
	if err := h.reports.Delete(c.UserContext(), session.FromFiber(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Report deleted"})
}

// Stream pushes the ordered feed as server-sent events until the client
// goes away or the broker shuts down.
func (h *ReportHandler) Stream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	feed, cancel := h.reports.Subscribe(c.UserContext())
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		keepAlive := time.NewTicker(streamKeepAlive)
		defer keepAlive.Stop()

		for {
			select {
			case reports, ok := <-feed:
				if !ok {
					return
				}
				payload, err := json.Marshal(reports)
				if err != nil {
					slog.Error("failed to encode report stream", "component", "reports", "error", err)
					return
				}
				fmt.Fprintf(w, "event: reports\ndata: %s\n\n", payload)
			case <-keepAlive.C:
				fmt.Fprint(w, ": keep-alive\n\n")
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}
