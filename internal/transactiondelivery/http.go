// Package transactiondelivery manages delivery layer of ledger transactions.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/moabank/bankbook/internal/domain"
	"github.com/moabank/bankbook/internal/middleware"
	"github.com/moabank/bankbook/pkg/errorspkg"
	"github.com/moabank/bankbook/pkg/tokenpkg"
	"github.com/moabank/bankbook/pkg/web"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Post(ctx context.Context, ownerID uuid.UUID, arg domain.PostTransactionParams) (domain.Transaction, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (domain.Transaction, error)
	List(ctx context.Context, ownerID uuid.UUID, arg domain.ListTransactionsParams) ([]domain.Transaction, error)
	UpdateAnnotation(ctx context.Context, ownerID uuid.UUID, arg domain.UpdateTransactionParams) (domain.Transaction, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) Handler {
	return Handler{service: ts}
}

func bindErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}

func authPayload(gctx *gin.Context) *tokenpkg.Payload {
	return gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)
}

func writeError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrInvalidAmount,
		domain.ErrUnsupportedIOType,
		domain.ErrUnsupportedMethod,
		domain.ErrInsufficientBalance:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case domain.ErrAccountNotFound, domain.ErrTransactionNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrAccountOwnerMismatch:
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type data struct {
	Transaction domain.Transaction `json:"transaction"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	AccountID   string    `json:"account_id" binding:"required,uuid"`
	Amount      string    `json:"amount" binding:"required"`
	IOType      string    `json:"io_type" binding:"required,iotype"`
	Method      string    `json:"method" binding:"required,method"`
	Description string    `json:"description" binding:"omitempty,max=255"`
	CreatedAt   time.Time `json:"created_at"`
}

// Create handles http request to post a deposit or a withdrawal.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))

		return
	}

	arg := domain.PostTransactionParams{
		AccountID:   uuid.MustParse(req.AccountID),
		Amount:      amount,
		IOType:      domain.IOType(req.IOType),
		Method:      domain.Method(req.Method),
		Description: req.Description,
		CreatedAt:   req.CreatedAt,
	}

	transaction, err := h.service.Post(ctx, authPayload(gctx).UserID, arg)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, response{Data: data{transaction}})
}

type getRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Get handles http request to get a transaction.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	transaction, err := h.service.Get(ctx, authPayload(gctx).UserID, uuid.MustParse(req.ID))
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{transaction}})
}

type listRequest struct {
	AccountID string    `form:"account_id" binding:"omitempty,uuid"`
	IOType    string    `form:"io_type" binding:"omitempty,iotype"`
	Method    string    `form:"method" binding:"omitempty,method"`
	MinAmount string    `form:"min_amount"`
	MaxAmount string    `form:"max_amount"`
	From      time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	PageID    int32     `form:"page_id" binding:"required,min=1"`
	PageSize  int32     `form:"page_size" binding:"required,min=1,max=100"`
}

type dataTransactions struct {
	Transactions []domain.Transaction `json:"transactions"`
}

type responseTransactions struct {
	Data dataTransactions `json:"data,omitempty"`
}

// List handles http request to list the caller's transactions, newest first.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	arg := domain.ListTransactionsParams{
		IOType: domain.IOType(req.IOType),
		Method: domain.Method(req.Method),
		From:   req.From,
		To:     req.To,
		Limit:  req.PageSize,
		Offset: (req.PageID - 1) * req.PageSize,
	}

	if req.AccountID != "" {
		arg.AccountID = uuid.NullUUID{UUID: uuid.MustParse(req.AccountID), Valid: true}
	}

	if req.MinAmount != "" {
		min, err := decimal.NewFromString(req.MinAmount)
		if err != nil {
			l.Info().Err(err).Send()
			gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))

			return
		}

		arg.MinAmount = decimal.NullDecimal{Decimal: min, Valid: true}
	}

	if req.MaxAmount != "" {
		max, err := decimal.NewFromString(req.MaxAmount)
		if err != nil {
			l.Info().Err(err).Send()
			gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))

			return
		}

		arg.MaxAmount = decimal.NullDecimal{Decimal: max, Valid: true}
	}

	transactions, err := h.service.List(ctx, authPayload(gctx).UserID, arg)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, responseTransactions{Data: dataTransactions{transactions}})
}

type updateRequest struct {
	Description *string `json:"description" binding:"omitempty,max=255"`
	Method      string  `json:"method" binding:"omitempty,method"`
}

// Update handles http request to annotate a transaction. Only description
// and method are accepted; financial fields are rejected by omission.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uriReq getRequest
	if err := gctx.ShouldBindUri(&uriReq); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	var req updateRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	arg := domain.UpdateTransactionParams{
		ID:          uuid.MustParse(uriReq.ID),
		Description: req.Description,
		Method:      domain.Method(req.Method),
	}

	transaction, err := h.service.UpdateAnnotation(ctx, authPayload(gctx).UserID, arg)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{transaction}})
}
