// Package resource - generic CRUD заглушки по любому объявленному
// ресурсу. Форма ответа зависит от коллекции: часть ресурсов отвечает
// {"data":[...]}, часть кладет список под именем ресурса, часть отдает
// голый массив. Клиент обязан переваривать все три.
package resource

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	authMW "adminhub/internal/app/server/api/http/middleware/auth"
	"adminhub/internal/app/server/store"
)

type Auditor interface {
	Record(ctx context.Context, adminID int, action, resource, itemID string) error
}

type Handler struct {
	store      *store.Memory
	audit      Auditor
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(st *store.Memory, audit Auditor, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		store:      st,
		audit:      audit,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.patchOp(), h.patch)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*anyOutput, error) {
	if _, ok := authMW.GetAdminID(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	items, err := h.store.List(input.Resource)
	if err != nil {
		return nil, huma.Error404NotFound("Неизвестный ресурс: " + input.Resource)
	}

	rows := make([]map[string]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, itemJSON(it))
	}

	style, _ := h.store.Style(input.Resource)
	switch style {
	case store.StyleBare:
		return &anyOutput{Body: rows}, nil
	case store.StyleKeyed:
		return &anyOutput{Body: map[string]any{
			"success":      true,
			input.Resource: rows,
		}}, nil
	default:
		return &anyOutput{Body: map[string]any{
			"success": true,
			"data":    rows,
		}}, nil
	}
}

func (h *Handler) find(ctx context.Context, input *itemInput) (*anyOutput, error) {
	if _, ok := authMW.GetAdminID(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	item, err := h.store.Get(input.Resource, input.ID)
	if err != nil {
		return nil, huma.Error404NotFound("Запись не найдена")
	}

	return h.itemOutput(input.Resource, item), nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*anyOutput, error) {
	adminID, ok := authMW.GetAdminID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	item, err := h.store.Create(input.Resource, input.Body)
	if err != nil {
		return nil, huma.Error404NotFound("Неизвестный ресурс: " + input.Resource)
	}

	h.auditRecord(ctx, adminID, "create", input.Resource, strconv.Itoa(item.ID))
	return h.itemOutput(input.Resource, item), nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*anyOutput, error) {
	return h.mutate(ctx, input, true)
}

func (h *Handler) patch(ctx context.Context, input *updateInput) (*anyOutput, error) {
	return h.mutate(ctx, input, false)
}

func (h *Handler) mutate(ctx context.Context, input *updateInput, replace bool) (*anyOutput, error) {
	adminID, ok := authMW.GetAdminID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	item, err := h.store.Update(input.Resource, input.ID, input.Body, replace)
	if err != nil {
		return nil, huma.Error404NotFound("Запись не найдена")
	}

	h.auditRecord(ctx, adminID, "update", input.Resource, input.ID)
	return h.itemOutput(input.Resource, item), nil
}

func (h *Handler) delete(ctx context.Context, input *itemInput) (*anyOutput, error) {
	adminID, ok := authMW.GetAdminID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.store.Delete(input.Resource, input.ID); err != nil {
		return nil, huma.Error404NotFound("Запись не найдена")
	}

	h.auditRecord(ctx, adminID, "delete", input.Resource, input.ID)
	return &anyOutput{Body: map[string]any{"success": true}}, nil
}

// itemOutput упаковывает одну запись в стиль ее коллекции.
func (h *Handler) itemOutput(resource string, item *store.Item) *anyOutput {
	style, _ := h.store.Style(resource)
	switch style {
	case store.StyleBare:
		return &anyOutput{Body: itemJSON(item)}
	case store.StyleKeyed:
		return &anyOutput{Body: map[string]any{
			"success":          true,
			singular(resource): itemJSON(item),
		}}
	default:
		return &anyOutput{Body: map[string]any{
			"success": true,
			"data":    itemJSON(item),
		}}
	}
}

func (h *Handler) auditRecord(ctx context.Context, adminID int, action, resource, itemID string) {
	if err := h.audit.Record(ctx, adminID, action, resource, itemID); err != nil {
		h.log.Warn("Журнал недоступен", "action", action, "error", err)
	}
}

func itemJSON(it *store.Item) map[string]any {
	out := make(map[string]any, len(it.Fields)+3)
	for k, v := range it.Fields {
		out[k] = v
	}
	out["id"] = it.ID
	out["created_at"] = it.CreatedAt.Format(time.RFC3339)
	out["updated_at"] = it.UpdatedAt.Format(time.RFC3339)
	return out
}

func singular(resource string) string {
	return strings.TrimSuffix(resource, "s")
}
