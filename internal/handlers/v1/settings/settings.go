package settings

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-ledger/internal/handlers/v1/problem"
	"github.com/carson-networks/pocket-ledger/internal/ledger"
	"github.com/carson-networks/pocket-ledger/internal/logging"
)

type settingsService interface {
	GetSettings(ctx context.Context) (ledger.Settings, error)
	SetTheme(ctx context.Context, theme string) (ledger.Settings, error)
}

type Settings struct {
	Theme string `json:"theme" enum:"dark,light" doc:"UI colour scheme"`
}

type GetSettingsOutput struct {
	Body Settings
}

// SaveSettingsBody leaves theme unchecked by the schema so an unknown value
// is reported with the same message as any other validation failure.
type SaveSettingsBody struct {
	Theme string `json:"theme" required:"false" doc:"dark or light"`
}

type SaveSettingsInput struct {
	Body SaveSettingsBody
}

type SaveSettingsOutput struct {
	Body struct {
		Success bool `json:"success"`
	}
}

// Handler serves the settings document.
type Handler struct {
	SettingsService settingsService
}

func NewHandler(svc settingsService) *Handler {
	return &Handler{SettingsService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-settings",
		Method:      http.MethodGet,
		Path:        "/settings",
		Summary:     "Get settings",
		Tags:        []string{"Settings"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "save-settings",
		Method:      http.MethodPost,
		Path:        "/settings",
		Summary:     "Save settings",
		Tags:        []string{"Settings"},
	}, h.save)
}

func (h *Handler) get(ctx context.Context, _ *struct{}) (*GetSettingsOutput, error) {
	settings, err := h.SettingsService.GetSettings(ctx)
	if err != nil {
		return nil, problem.FromError(err)
	}
	return &GetSettingsOutput{Body: Settings{Theme: string(settings.Theme)}}, nil
}

func (h *Handler) save(ctx context.Context, input *SaveSettingsInput) (*SaveSettingsOutput, error) {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("theme", input.Body.Theme)
	}

	if _, err := h.SettingsService.SetTheme(ctx, input.Body.Theme); err != nil {
		return nil, problem.FromError(err)
	}

	resp := &SaveSettingsOutput{}
	resp.Body.Success = true
	return resp, nil
}
