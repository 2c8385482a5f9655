package jwtinspect

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/jwtinspect/core/binder"
	"github.com/dmitrymomot/jwtinspect/core/handler"
	"github.com/dmitrymomot/jwtinspect/core/history"
	"github.com/dmitrymomot/jwtinspect/core/logger"
	"github.com/dmitrymomot/jwtinspect/core/response"
	"github.com/dmitrymomot/jwtinspect/pkg/jwt"
)

// defaultAlgorithm is used by generate when the request names none.
const defaultAlgorithm = "HS256"

type analyzeRequest struct {
	JWT    string `json:"jwt"`
	Secret string `json:"secret"`
}

type generateRequest struct {
	Header    json.RawMessage `json:"header"`
	Payload   json.RawMessage `json:"payload"`
	Secret    string          `json:"secret"`
	Algorithm string          `json:"algorithm"`
}

type generateResponse struct {
	JWT string `json:"jwt"`
}

type generateErrorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (app *App) analyze(ctx *Context) handler.Response {
	var req analyzeRequest
	if err := app.bind(ctx.Request(), &req); err != nil {
		return response.Error(bindError(err))
	}
	if req.JWT == "" {
		return response.Error(response.ErrBadRequest.WithMessage("jwt is required"))
	}

	// An empty secret from a form field means none was supplied.
	var secret []byte
	if req.Secret != "" {
		secret = []byte(req.Secret)
	}

	res := app.analyzer.Analyze(req.JWT, secret)
	app.metrics.observeAnalysis(res)

	rec, err := app.history.Record(ctx, req.JWT, res)
	if err != nil {
		app.metrics.historyFailed("record")
		app.logger.ErrorContext(ctx, "failed to record analysis",
			logger.Component("history"),
			logger.Error(err),
		)
	} else {
		app.logger.DebugContext(ctx, "analysis recorded",
			logger.HistoryID(rec.ID),
			logger.TokenSize(req.JWT),
		)
	}

	return response.JSON(res)
}

func (app *App) generate(ctx *Context) handler.Response {
	var req generateRequest
	if err := app.bind(ctx.Request(), &req); err != nil {
		return response.Error(bindError(err))
	}
	if req.Algorithm == "" {
		req.Algorithm = defaultAlgorithm
	}

	token, err := jwt.Generate(jwt.GenerationRequest{
		Header:    req.Header,
		Payload:   req.Payload,
		Secret:    []byte(req.Secret),
		Algorithm: req.Algorithm,
	})
	app.metrics.observeGeneration(req.Algorithm, err)
	if err != nil {
		var genErr *jwt.GenerationError
		if errors.As(err, &genErr) {
			return response.JSONWithStatus(generateErrorResponse{Error: genErr.Message}, http.StatusBadRequest)
		}
		return response.Error(err)
	}

	return response.JSON(generateResponse{JWT: token})
}

func (app *App) listHistory(ctx *Context) handler.Response {
	recs, err := app.history.List(ctx)
	if err != nil {
		app.metrics.historyFailed("list")
		app.logger.ErrorContext(ctx, "failed to list history", logger.Error(err))
		return response.Error(response.ErrInternalServerError.WithMessage("failed to load history"))
	}
	return response.JSON(recs)
}

func (app *App) deleteHistory(ctx *Context) handler.Response {
	id := ctx.Param("id")
	if err := app.history.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, history.ErrNotFound):
			return response.Error(response.ErrNotFound.WithMessage("history record not found"))
		case errors.Is(err, history.ErrInvalidID):
			return response.Error(response.ErrBadRequest.WithMessage("invalid history record id"))
		}
		app.metrics.historyFailed("delete")
		app.logger.ErrorContext(ctx, "failed to delete history record",
			logger.HistoryID(id),
			logger.Error(err),
		)
		return response.Error(response.ErrInternalServerError.WithMessage("failed to delete history record"))
	}

	app.logger.InfoContext(ctx, "history record deleted",
		logger.Event("history.deleted"),
		logger.HistoryID(id),
	)
	return response.JSON(messageResponse{Message: "history record deleted"})
}

func (app *App) algorithms(*Context) handler.Response {
	return response.JSON(jwt.Descriptions())
}

// apiHealth always answers 200; the database field reflects the history
// store's ping.
func (app *App) apiHealth(ctx *Context) handler.Response {
	res := healthResponse{Status: "healthy", Database: "connected"}
	if err := app.history.Ping(ctx); err != nil {
		app.logger.WarnContext(ctx, "history store ping failed", logger.Error(err))
		res.Database = "disconnected"
	}
	return response.JSON(res)
}

func bindError(err error) error {
	switch {
	case errors.Is(err, binder.ErrBodyTooLarge):
		return response.ErrRequestEntityTooLarge.WithError(err)
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return response.ErrUnsupportedMediaType.WithError(err)
	}
	return response.ErrBadRequest.WithError(err)
}
