// Package invoicedelivery manages delivery layer of invoices.
package invoicedelivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/invoice-dash/internal/domain"
	"github.com/go-petr/invoice-dash/internal/viewcache"
	"github.com/go-petr/invoice-dash/pkg/errorspkg"
	"github.com/go-petr/invoice-dash/pkg/web"
)

// Service provides service layer interface needed by invoice delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package invoicedelivery
type Service interface {
	Create(ctx context.Context, prev domain.InvoiceFormState, form domain.InvoiceFormValues) domain.InvoiceFormState
	Update(ctx context.Context, id string, prev domain.InvoiceFormState, form domain.InvoiceFormValues) domain.InvoiceFormState
	Delete(ctx context.Context, id string) domain.InvoiceFormState
	Get(ctx context.Context, id string) (domain.Invoice, error)
	List(ctx context.Context, pageSize, pageID int32) ([]domain.Invoice, error)
}

// Handler facilitates invoice delivery layer logic.
type Handler struct {
	service Service
	cache   *viewcache.Cache
}

// NewHandler returns invoice handler.
func NewHandler(is Service, vc *viewcache.Cache) *Handler {
	return &Handler{
		service: is,
		cache:   vc,
	}
}

// applyEffects interprets the mutation side-effect signals: cached views are
// invalidated first, then at most one navigation is answered as a redirect.
func (h *Handler) applyEffects(gctx *gin.Context, effects []domain.Effect) bool {
	redirected := false

	for _, effect := range effects {
		switch effect.Kind {
		case domain.EffectInvalidate:
			h.cache.Invalidate(effect.Path)
		case domain.EffectNavigate:
			gctx.Redirect(http.StatusSeeOther, effect.Path)

			redirected = true
		}
	}

	return redirected
}

type idRequest struct {
	ID string `uri:"id" binding:"required"`
}

// Create handles http request to create an invoice from a submitted form.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var form domain.InvoiceFormValues
	if err := gctx.ShouldBind(&form); err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	state := h.service.Create(ctx, domain.InvoiceFormState{}, form)

	if h.applyEffects(gctx, state.Effects) {
		return
	}

	if state.Errors != nil {
		gctx.JSON(http.StatusUnprocessableEntity, state)

		return
	}

	gctx.JSON(http.StatusInternalServerError, state)
}

// Update handles http request to update the invoice with the given id.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var form domain.InvoiceFormValues
	if err := gctx.ShouldBind(&form); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	state := h.service.Update(ctx, req.ID, domain.InvoiceFormState{}, form)

	if h.applyEffects(gctx, state.Effects) {
		return
	}

	if state.Errors != nil {
		gctx.JSON(http.StatusUnprocessableEntity, state)

		return
	}

	gctx.JSON(http.StatusInternalServerError, state)
}

// Delete handles http request to delete the invoice with the given id.
// The outcome is always reported through the state message.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	state := h.service.Delete(ctx, req.ID)

	h.applyEffects(gctx, state.Effects)

	if len(state.Effects) == 0 {
		gctx.JSON(http.StatusInternalServerError, state)

		return
	}

	gctx.JSON(http.StatusOK, state)
}

type data struct {
	Invoice domain.Invoice `json:"invoice"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Get handles http request to get a single invoice.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	invoice, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrInvoiceNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{invoice}})
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=5,max=30"`
}

type listData struct {
	Invoices []domain.Invoice `json:"invoices"`
}

type listResponse struct {
	Data listData `json:"data,omitempty"`
}

// List handles http request to list invoices. The first page is served from
// the view cache until a mutation invalidates it.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	cacheKey := gctx.Request.URL.RequestURI()

	if view, ok := h.cache.Get(cacheKey); ok {
		gctx.Data(http.StatusOK, "application/json; charset=utf-8", view)

		return
	}

	invoices, err := h.service.List(ctx, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := listResponse{Data: listData{invoices}}

	view, err := json.Marshal(res)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	h.cache.Set(cacheKey, view)

	gctx.Data(http.StatusOK, "application/json; charset=utf-8", view)
}
