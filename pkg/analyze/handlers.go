package analyze

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fieldlift/fieldlift/pkg/asyncx"
	"github.com/fieldlift/fieldlift/pkg/fsx"
	"github.com/fieldlift/fieldlift/pkg/history"
	"github.com/fieldlift/fieldlift/pkg/logx"
	"github.com/fieldlift/fieldlift/pkg/render"
)

// Handlers exposes the analysis pipeline over HTTP.
type Handlers struct {
	svc     *Service
	cache   *render.DocumentCache
	storage fsx.FileReader
	hist    history.Store
}

func NewHandlers(svc *Service, cache *render.DocumentCache, storage fsx.FileReader, hist history.Store) *Handlers {
	return &Handlers{svc: svc, cache: cache, storage: storage, hist: hist}
}

// RegisterRoutes mounts the analysis endpoints under /api/v1. Extra
// middleware (such as authentication) is applied to the whole group.
func (h *Handlers) RegisterRoutes(app fiber.Router, middleware ...fiber.Handler) {
	api := app.Group("/api/v1")
	for _, mw := range middleware {
		api.Use(mw)
	}
	api.Post("/analyze", h.analyzeText)
	api.Post("/analyze/file", h.analyzeFile)
	api.Get("/analyses", h.listAnalyses)
}

type analyzeRequest struct {
	DocumentText    string `json:"documentText"`
	DocumentName    string `json:"documentName"`
	ClientStartTime int64  `json:"clientStartTime"`
}

type analyzeFileRequest struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

type analyzeResponse struct {
	Fields   []Field  `json:"fields"`
	Metadata Metadata `json:"metadata"`
	// RoundTripTime is derived from the caller's own start timestamp
	// (unix milliseconds) when one was sent
	RoundTripTime int64 `json:"roundTripTime,omitempty"`
}

func (h *Handlers) analyzeText(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return errorRegistry.NewWithCause(ErrInvalidRequest, err)
	}

	result, err := h.svc.Analyze(c.Context(), req.DocumentText)
	if err != nil {
		return err
	}

	h.record(req.DocumentName, result)

	resp := analyzeResponse{Fields: result.Fields, Metadata: result.Metadata}
	if req.ClientStartTime > 0 {
		resp.RoundTripTime = time.Now().UnixMilli() - req.ClientStartTime
	}
	return c.JSON(resp)
}

func (h *Handlers) analyzeFile(c *fiber.Ctx) error {
	var req analyzeFileRequest
	if err := c.BodyParser(&req); err != nil {
		return errorRegistry.NewWithCause(ErrInvalidRequest, err)
	}
	if req.Path == "" {
		return errorRegistry.NewWithMessage(ErrInvalidRequest, "path is required")
	}
	if req.Name == "" {
		req.Name = req.Path
	}

	data, err := h.storage.ReadFile(c.Context(), req.Path)
	if err != nil {
		return errorRegistry.NewWithCause(ErrInvalidRequest, err)
	}

	// Session teardown for the render cache: trim it back once this
	// request's rendering is done.
	defer func() {
		if err := h.cache.Shed(context.Background()); err != nil {
			logx.WithError(err).Warn("render cache shed failed")
		}
	}()

	text, err := h.cache.Text(c.Context(), req.Name, data)
	if err != nil {
		return err
	}

	result, err := h.svc.Analyze(c.Context(), text)
	if err != nil {
		return err
	}

	h.record(req.Name, result)

	return c.JSON(analyzeResponse{Fields: result.Fields, Metadata: result.Metadata})
}

func (h *Handlers) listAnalyses(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	records, err := h.hist.Recent(c.Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"analyses": records})
}

// record saves the audit row without blocking the response.
func (h *Handlers) record(name string, result *Result) {
	if h.hist == nil {
		return
	}
	rec := history.Record{
		ID:              uuid.NewString(),
		DocumentName:    name,
		TotalFields:     result.Metadata.TotalFields,
		ChunksProcessed: result.Metadata.ChunksProcessed,
		ProcessingMS:    result.Metadata.ProcessingTime,
		CreatedAt:       time.Now().UTC(),
	}
	asyncx.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.hist.Save(ctx, rec); err != nil {
			logx.WithError(err).WithField("document", name).Warn("failed to record analysis")
		}
	})
}
