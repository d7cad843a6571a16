package handler

import (
	"net/http"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
	"github.com/labstack/echo/v4"
)

// POST /data-manager?type= values.
const (
	postOrder = "order"
	postBulk  = "bulk"
)

const exportFilename = "storefront-export.json"

// ContentHandler serves /data-manager: the site content reads, order
// intake and the bulk import.
type ContentHandler struct {
	Handler
	content *service.ContentService
	orders  *service.OrderService
	bulk    *service.BulkService
}

func NewContentHandler(
	s *server.Server,
	content *service.ContentService,
	orders *service.OrderService,
	bulk *service.BulkService,
) *ContentHandler {
	return &ContentHandler{
		Handler: NewHandler(s),
		content: content,
		orders:  orders,
		bulk:    bulk,
	}
}

func (h *ContentHandler) Get(c echo.Context, req *model.GetContentRequest) (any, error) {
	return h.content.Get(c.Request().Context(), req)
}

func (h *ContentHandler) Export(c echo.Context, _ *model.ExportRequest) ([]byte, error) {
	return h.content.Export(c.Request().Context())
}

func (h *ContentHandler) CreateOrder(c echo.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	return h.orders.Create(c.Request().Context(), req)
}

func (h *ContentHandler) Import(c echo.Context, req *model.BulkImportRequest) (*model.BulkImportResponse, error) {
	return h.bulk.Import(c.Request().Context(), req)
}

// Post dispatches POST /data-manager on the type query parameter. Each
// branch runs the regular bind and validate pipeline for its own body.
func (h *ContentHandler) Post() echo.HandlerFunc {
	createOrder := Handle(h.Handler, h.CreateOrder, http.StatusCreated, &model.CreateOrderRequest{})
	importBulk := Handle(h.Handler, h.Import, http.StatusOK, &model.BulkImportRequest{})

	return func(c echo.Context) error {
		switch c.QueryParam("type") {
		case postOrder:
			return createOrder(c)
		case postBulk:
			return importBulk(c)
		default:
			return errs.NewBadRequestError("Invalid request", true, nil, nil)
		}
	}
}

// ExportFile serves the aggregate as a download.
func (h *ContentHandler) ExportFile() echo.HandlerFunc {
	return HandleFile(h.Handler, h.Export, http.StatusOK, &model.ExportRequest{}, exportFilename, echo.MIMEApplicationJSON)
}
