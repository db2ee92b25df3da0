package book

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ursulinastarry/book-library/app/echoServer/jwtx"
	"github.com/Ursulinastarry/book-library/authz"
	"github.com/Ursulinastarry/book-library/model"
	booksvc "github.com/Ursulinastarry/book-library/service/book"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// authorize writes the 401/403 response itself and reports whether the
// handler may proceed.
func (h *Controller) authorize(c echo.Context, op authz.Op) bool {
	caller, err := jwtx.CallerFromContext(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized"})
		return false
	}
	if !authz.Can(caller.RoleID, op) {
		_ = c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
		return false
	}
	return true
}

func bookID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// GET /books
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context(), listParams(c))
	if err != nil {
		h.Log.Error("book list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /books/stats
func (h *Controller) Stats(c echo.Context) error {
	st, err := h.Svc.Stats(c.Request().Context(), listParams(c))
	if err != nil {
		h.Log.Error("book stats error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, st)
}

func listParams(c echo.Context) booksvc.ListParams {
	return booksvc.ListParams{
		Search: c.QueryParam("search"),
		Genre:  c.QueryParam("genre"),
		SortBy: c.QueryParam("sortBy"),
	}
}

// GET /books/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := bookID(c)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, booksvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Book not found"})
		}
		h.Log.Error("book detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, row)
}

// Create a book
// @Summary      Create book
// @Description  Admin-only catalog insert
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body  BookReq  true  "Book payload"
// @Success      201  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Router       /books [post]
func (h *Controller) Create(c echo.Context) error {
	if !h.authorize(c, authz.OpBookCreate) {
		return nil
	}
	var req BookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	id, err := h.Svc.Create(c.Request().Context(), req.toModel())
	if err != nil {
		h.Log.Error("book create error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Book created successfully", "id": id})
}

// PUT /books/:id
func (h *Controller) Update(c echo.Context) error {
	if !h.authorize(c, authz.OpBookUpdate) {
		return nil
	}
	id, err := bookID(c)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req BookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	if err := h.Svc.Update(c.Request().Context(), id, req.toModel()); err != nil {
		if errors.Is(err, booksvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Book not found"})
		}
		h.Log.Error("book update error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book updated successfully"})
}

// PATCH /books/:id
func (h *Controller) PartialUpdate(c echo.Context) error {
	if !h.authorize(c, authz.OpBookPatch) {
		return nil
	}
	id, err := bookID(c)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var patch model.BookPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.Svc.Patch(c.Request().Context(), id, patch); err != nil {
		switch {
		case errors.Is(err, booksvc.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "no fields to update"})
		case errors.Is(err, booksvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Book not found"})
		}
		h.Log.Error("book patch error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book partially updated successfully"})
}

// DELETE /books/:id
func (h *Controller) Delete(c echo.Context) error {
	if !h.authorize(c, authz.OpBookDelete) {
		return nil
	}
	id, err := bookID(c)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, booksvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Book not found"})
		case errors.Is(err, booksvc.ErrBookInUse):
			return c.JSON(http.StatusConflict, echo.Map{"message": "Book still has copies"})
		}
		h.Log.Error("book delete error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book deleted successfully"})
}
