package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"topup/internal/core/application/usecases/commands"
	"topup/internal/core/application/usecases/queries"
	"topup/internal/core/domain/model/kernel"
	"topup/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	proofFormField    = "proof"
	proofRedirectPath = "/dashboard"
	orderNotFoundText = "order not found"
)

// CreateOrder handles POST /cart.
func (s *Server) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return s.failure(c, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}
	if err := req.normalize(); err != nil {
		return s.failure(c, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(IdentityFrom(c), orderID, req.PackageName, req.Price)
	if err != nil {
		return s.failure(c, err)
	}
	if err := s.useCases.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.failure(c, err)
	}

	return c.JSON(http.StatusOK, resultResponse{Success: true, OrderID: orderID.String()})
}

// GetBuyerOrders handles GET /orders. Without a session the list is empty.
func (s *Server) GetBuyerOrders(c echo.Context) error {
	views, err := s.useCases.GetBuyerOrders.Handle(c.Request().Context(), queries.NewGetBuyerOrdersQuery(IdentityFrom(c)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponses(views))
}

// GetAllOrders handles GET /admin/orders.
func (s *Server) GetAllOrders(c echo.Context) error {
	views, err := s.useCases.GetAllOrders.Handle(c.Request().Context(), queries.NewGetAllOrdersQuery(IdentityFrom(c)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponses(views))
}

// GetOrder handles GET /orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(IdentityFrom(c), orderID)
	if err != nil {
		return err
	}

	view, err := s.useCases.GetOrder.Handle(c.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return c.String(http.StatusNotFound, orderNotFoundText)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(view))
}

// DeleteOrder handles POST|DELETE /orders/:id and its admin twin.
func (s *Server) DeleteOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteOrderCommand(IdentityFrom(c), orderID)
	if err != nil {
		return err
	}

	if err := s.useCases.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "deleted"})
}

// ConfirmOrder handles POST /admin/orders/:id/confirm.
func (s *Server) ConfirmOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewConfirmOrderCommand(IdentityFrom(c), orderID)
	if err != nil {
		return err
	}

	if err := s.useCases.ConfirmOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "status changed"})
}

// UploadProof handles POST /orders/:id/proof with a multipart "proof" file.
func (s *Server) UploadProof(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.failure(c, err)
	}

	filename, data, err := s.readProof(c)
	if err != nil {
		return s.failure(c, err)
	}

	cmd, err := commands.NewAttachProofCommand(IdentityFrom(c), orderID, filename, data)
	if err != nil {
		return s.failure(c, err)
	}
	if err := s.useCases.AttachProof.Handle(c.Request().Context(), cmd); err != nil {
		return s.failure(c, err)
	}

	return c.Redirect(http.StatusSeeOther, proofRedirectPath)
}

// readProof reads at most maxProofBytes+1 bytes so that the handler can
// report an oversized upload without buffering all of it.
func (s *Server) readProof(c echo.Context) (string, []byte, error) {
	header, err := c.FormFile(proofFormField)
	if err != nil {
		return "", nil, errs.NewInvalidMediaErrorWithCause("", fmt.Errorf("no %q file part: %w", proofFormField, err))
	}

	file, err := header.Open()
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.maxProofBytes+1))
	if err != nil {
		return "", nil, err
	}
	return header.Filename, data, nil
}

// DownloadReceipt handles GET /orders/:id/receipt.
func (s *Server) DownloadReceipt(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGenerateReceiptQuery(IdentityFrom(c), orderID)
	if err != nil {
		return err
	}

	receipt, err := s.useCases.GenerateReceipt.Handle(c.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return c.String(http.StatusNotFound, orderNotFoundText)
	}
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", receipt.Filename))
	return c.Blob(http.StatusOK, "application/pdf", receipt.Content)
}
