package loan

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ursulinastarry/book-library/app/echoServer/jwtx"
	availabilitysvc "github.com/Ursulinastarry/book-library/service/availability"
	loansvc "github.com/Ursulinastarry/book-library/service/loan"
)

type Controller struct {
	Avail availabilitysvc.Service
	Svc   loansvc.Service
	V     *validator.Validate
	Log   *slog.Logger
}

// GET /books/available
func (h *Controller) Available(c echo.Context) error {
	copies, err := h.Avail.All(c.Request().Context())
	if err != nil {
		h.Log.Error("available copies error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Server error fetching available copies",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(copies),
		"data":    copies,
	})
}

// GET /books/available/:id
func (h *Controller) AvailableForBook(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid book ID"})
	}
	out, err := h.Avail.ForBook(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, availabilitysvc.ErrBookNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Book not found"})
		}
		h.Log.Error("available copies error", "err", err, "book_id", id)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Server error fetching available copies",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"book":    out.Book,
		"count":   out.Count,
		"copies":  out.Copies,
	})
}

// Borrow a copy
// @Summary      Borrow a book copy
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        payload  body  BorrowReq  true  "Borrow payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any "copy not available"
// @Failure      401  {object}  map[string]any
// @Router       /books/borrow [post]
func (h *Controller) Borrow(c echo.Context) error {
	caller, err := jwtx.CallerFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized request."})
	}
	var req BorrowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	out, err := h.Svc.Borrow(c.Request().Context(), caller.UserID, req.CopyID, req.LibrarianID)
	if err != nil {
		switch loansvc.Code(err) {
		case loansvc.ErrCopyUnavailable:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Book copy is not available."})
		default:
			h.Log.Error("borrow error", "err", err, "copy_id", req.CopyID, "user_id", caller.UserID)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error while borrowing book."})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":     "Book borrowed successfully.",
		"borrower_id": out.BorrowerID,
		"return_date": out.ExpectedReturnDate,
	})
}

// POST /books/return
func (h *Controller) Return(c echo.Context) error {
	caller, err := jwtx.CallerFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized request."})
	}
	var req ReturnReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	out, err := h.Svc.Return(c.Request().Context(), caller.UserID, req.BorrowerID, req.LibrarianID)
	if err != nil {
		switch loansvc.Code(err) {
		case loansvc.ErrLoanNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Borrow record not found or book already returned."})
		default:
			h.Log.Error("return error", "err", err, "borrower_id", req.BorrowerID, "user_id", caller.UserID)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error while returning book."})
		}
	}

	msg := "Book returned successfully."
	if out.LateFee != nil {
		msg = fmt.Sprintf("Book returned successfully. Late fee: $%.2f", *out.LateFee)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":     msg,
		"return_date": out.ReturnDate,
		"late_fee":    out.LateFee,
	})
}

// GET /books/loans
func (h *Controller) MyLoans(c echo.Context) error {
	caller, err := jwtx.CallerFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized request."})
	}
	rows, err := h.Svc.MyHistory(c.Request().Context(), caller.UserID)
	if err != nil {
		h.Log.Error("loan history error", "err", err, "user_id", caller.UserID)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
