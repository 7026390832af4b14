package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/unique-id/internal/application/identifier"
)

type IdentifierHandler struct {
	useCase app.GenerateIdentifier
}

type generateIdentifierRequest struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	Kendra     string `json:"kendra"`
	Zone       string `json:"zone"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

func NewIdentifierHandler(useCase app.GenerateIdentifier) *IdentifierHandler {
	return &IdentifierHandler{useCase: useCase}
}

func (h *IdentifierHandler) GenerateIdentifier(c echo.Context) error {
	var req generateIdentifierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse("bad_request", "invalid request body"))
	}

	out, err := h.useCase.Execute(c.Request().Context(), app.GenerateIdentifierInput{
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Kendra:     req.Kendra,
		Zone:       req.Zone,
		Phone:      req.Phone,
		Email:      req.Email,
	})
	if err != nil {
		if errors.Is(err, app.ErrMissingRequiredField) {
			return c.JSON(http.StatusBadRequest, errorResponse("missing_required_field", "first_name and last_name are required"))
		}
		return c.JSON(http.StatusInternalServerError, errorResponse("internal_error", "failed to generate unique id"))
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
