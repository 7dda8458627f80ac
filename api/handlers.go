package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/memheal/memcore/internal/stress"
)

// simulateUsageFn is swappable so tests do not spawn real multi-second
// allocation bursts.
var simulateUsageFn = stress.SimulateUsage

// Current memory endpoint. Every request also records one history
// point, so history growth is driven by polling, not by a timer.
func (s *Server) getCurrentMemory(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats := s.collector.Snapshot(ctx)
	s.history.Add(HistoryPoint{
		Timestamp:   stats.Timestamp,
		UsedPercent: stats.UsedPercent,
	})

	return c.JSON(fiber.Map{"success": true, "data": stats})
}

// Memory history endpoint
func (s *Server) getMemoryHistory(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": s.history.Points()})
}

// Swap endpoint
func (s *Server) getSwap(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	info, err := s.swapReader.GetInfo(ctx)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "data": info})
}

// Own-process memory endpoint
func (s *Server) getProcessMemory(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	info, err := s.procReader.GetInfo(ctx)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "data": info})
}

// Cache release endpoint. Release is best effort, so the HTTP status
// stays 200 and the success flag carries the outcome.
func (s *Server) releaseCache(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return c.JSON(fiber.Map{"success": s.releaser.Release(ctx)})
}

// Fragmentation endpoint
func (s *Server) fragmentMemory(c *fiber.Ctx) error {
	req := struct {
		Count  int `json:"count"`
		SizeKB int `json:"size_kb"`
	}{Count: 30, SizeKB: 4}

	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "invalid request body"})
		}
	}

	count := clampInt(req.Count, 1, s.cfg.Stress.MaxFragmentCount)
	sizeKB := clampInt(req.SizeKB, 1, s.cfg.Stress.MaxFragmentSizeKB)

	ok := stress.InduceFragmentation(count, sizeKB)

	return c.JSON(fiber.Map{
		"success": ok,
		"message": fmt.Sprintf("Fragmented heap with %d blocks of %dKB", count, sizeKB),
	})
}

// Defragmentation endpoint
func (s *Server) defragmentMemory(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": stress.Defragment()})
}

// Usage simulation endpoint. The burst runs in the background and the
// response only confirms the start.
func (s *Server) simulateUsage(c *fiber.Ctx) error {
	req := struct {
		UsageMB int `json:"usage_mb"`
	}{UsageMB: 100}

	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "invalid request body"})
		}
	}

	usageMB := clampInt(req.UsageMB, s.cfg.Stress.MinUsageMB, s.cfg.Stress.MaxUsageMB)

	go simulateUsageFn(usageMB)

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Started memory usage simulation using %dMB", usageMB),
	})
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
