package http

import (
	"net/http"

	"topup/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetCatalog handles GET /catalog.
func (s *Server) GetCatalog(c echo.Context) error {
	items, err := s.useCases.GetCatalog.Handle(c.Request().Context(), queries.NewGetCatalogQuery())
	if err != nil {
		return err
	}

	response := make([]catalogItemResponse, len(items))
	for i, item := range items {
		response[i] = catalogItemResponse{Name: item.Name, Price: item.Price, ImageRef: item.ImageRef}
	}
	return c.JSON(http.StatusOK, response)
}

// GetBestSellers handles GET /best-sellers?n=.
func (s *Server) GetBestSellers(c echo.Context) error {
	req, err := bindBestSellersRequest(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetBestSellersQuery(req.Limit)
	if err != nil {
		return err
	}

	sellers, err := s.useCases.GetBestSellers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]bestSellerResponse, len(sellers))
	for i, seller := range sellers {
		response[i] = bestSellerResponse{
			catalogItemResponse: catalogItemResponse{
				Name:     seller.Name,
				Price:    seller.Price,
				ImageRef: seller.ImageRef,
			},
			PurchaseCount: seller.PurchaseCount,
		}
	}
	return c.JSON(http.StatusOK, response)
}
