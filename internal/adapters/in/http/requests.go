package http

import (
	"errors"
	"strings"
	"unicode/utf8"

	"topup/internal/core/domain/model/kernel"
	"topup/internal/core/domain/services"
	"topup/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	maxUsernameLength    = 64
	maxDisplayNameLength = 128
	minPasswordLength    = 6
	maxPasswordLength    = 72 // bcrypt ignores anything longer
)

type registerRequest struct {
	Username    string `json:"username" form:"username"`
	DisplayName string `json:"display_name" form:"display_name"`
	Password    string `json:"password" form:"password"`
}

func (r *registerRequest) normalize() error {
	r.Username = strings.TrimSpace(r.Username)
	r.DisplayName = strings.TrimSpace(r.DisplayName)

	var errList []error
	if r.Username == "" {
		errList = append(errList, errs.NewValueIsRequiredError("username"))
	} else if utf8.RuneCountInString(r.Username) > maxUsernameLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("username length",
			utf8.RuneCountInString(r.Username), 1, maxUsernameLength))
	}
	if utf8.RuneCountInString(r.DisplayName) > maxDisplayNameLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("display_name length",
			utf8.RuneCountInString(r.DisplayName), 0, maxDisplayNameLength))
	}
	if len(r.Password) < minPasswordLength || len(r.Password) > maxPasswordLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("password length",
			len(r.Password), minPasswordLength, maxPasswordLength))
	}
	return errors.Join(errList...)
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (r *loginRequest) normalize() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" || r.Password == "" {
		return errs.NewValueIsRequiredError("username and password")
	}
	return nil
}

// createOrderRequest accepts the price the client displayed; it is only
// compared against the catalog.
type createOrderRequest struct {
	PackageName string `json:"package_name" form:"package_name"`
	Price       int64  `json:"price" form:"price"`
}

func (r *createOrderRequest) normalize() error {
	r.PackageName = strings.TrimSpace(r.PackageName)
	if r.PackageName == "" {
		return errs.NewValueIsRequiredError("package_name")
	}
	return nil
}

// bestSellersRequest binds ?n=, defaulting to the storefront size.
type bestSellersRequest struct {
	Limit int
}

func bindBestSellersRequest(c echo.Context) (bestSellersRequest, error) {
	req := bestSellersRequest{Limit: services.DefaultBestSellerLimit}
	if err := echo.QueryParamsBinder(c).Int("n", &req.Limit).BindError(); err != nil {
		return bestSellersRequest{}, errs.NewValueIsInvalidErrorWithCause("n", err)
	}
	return req, nil
}

// orderIDParam parses the :id path parameter.
func orderIDParam(c echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("order id", err)
	}
	return id, nil
}
