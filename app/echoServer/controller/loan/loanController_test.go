package loan

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Ursulinastarry/book-library/model"
	availabilitysvc "github.com/Ursulinastarry/book-library/service/availability"
	loansvc "github.com/Ursulinastarry/book-library/service/loan"
)

type loanSvcMock struct {
	borrowFn func(ctx context.Context, userID, copyID int64, librarianID *int64) (*loansvc.Borrowed, error)
	returnFn func(ctx context.Context, userID, borrowerID int64, librarianID *int64) (*loansvc.Returned, error)
	histFn   func(ctx context.Context, userID int64) ([]loansvc.HistoryRow, error)
}

func (m *loanSvcMock) Borrow(ctx context.Context, userID, copyID int64, librarianID *int64) (*loansvc.Borrowed, error) {
	return m.borrowFn(ctx, userID, copyID, librarianID)
}
func (m *loanSvcMock) Return(ctx context.Context, userID, borrowerID int64, librarianID *int64) (*loansvc.Returned, error) {
	return m.returnFn(ctx, userID, borrowerID, librarianID)
}
func (m *loanSvcMock) MyHistory(ctx context.Context, userID int64) ([]loansvc.HistoryRow, error) {
	return m.histFn(ctx, userID)
}

type availSvcMock struct {
	allFn     func(ctx context.Context) ([]model.AvailableCopy, error)
	forBookFn func(ctx context.Context, bookID int64) (*availabilitysvc.BookAvailability, error)
}

func (m *availSvcMock) All(ctx context.Context) ([]model.AvailableCopy, error) { return m.allFn(ctx) }
func (m *availSvcMock) ForBook(ctx context.Context, bookID int64) (*availabilitysvc.BookAvailability, error) {
	return m.forBookFn(ctx, bookID)
}

func newController(ls loansvc.Service, as availabilitysvc.Service) *Controller {
	return &Controller{
		Avail: as,
		Svc:   ls,
		V:     validator.New(),
		Log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// codedErr mirrors the service's coded errors so handlers can be tested
// against specific codes.
type codedErr struct{ code loansvc.ErrCode }

func (e codedErr) Error() string         { return string(e.code) }
func (e codedErr) Code() loansvc.ErrCode { return e.code }

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func withSession(c echo.Context, userID, roleID int64) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     float64(userID),
		"role_id": float64(roleID),
	})
	c.Set("user", tok)
}

func TestBorrow_Unauthenticated(t *testing.T) {
	e := echo.New()
	h := newController(&loanSvcMock{}, &availSvcMock{})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/books/borrow", `{"copy_id":1}`), rec)

	require.NoError(t, h.Borrow(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBorrow_Success(t *testing.T) {
	due := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	ls := &loanSvcMock{
		borrowFn: func(ctx context.Context, userID, copyID int64, librarianID *int64) (*loansvc.Borrowed, error) {
			require.Equal(t, int64(7), userID)
			require.Equal(t, int64(11), copyID)
			require.Nil(t, librarianID)
			return &loansvc.Borrowed{BorrowerID: 3, ExpectedReturnDate: due}, nil
		},
	}
	e := echo.New()
	h := newController(ls, &availSvcMock{})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/books/borrow", `{"copy_id":11}`), rec)
	withSession(c, 7, model.RoleBorrower)

	require.NoError(t, h.Borrow(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), "Book borrowed successfully.")
	require.Contains(t, rec.Body.String(), "2025-04-01")
}

func TestBorrow_CopyUnavailable(t *testing.T) {
	ls := &loanSvcMock{
		borrowFn: func(ctx context.Context, userID, copyID int64, librarianID *int64) (*loansvc.Borrowed, error) {
			return nil, codedErr{code: loansvc.ErrCopyUnavailable}
		},
	}
	e := echo.New()
	h := newController(ls, &availSvcMock{})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/books/borrow", `{"copy_id":11}`), rec)
	withSession(c, 7, model.RoleBorrower)

	require.NoError(t, h.Borrow(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Book copy is not available.")
}

func TestBorrow_BadPayload(t *testing.T) {
	e := echo.New()
	h := newController(&loanSvcMock{}, &availSvcMock{})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/books/borrow", `{}`), rec)
	withSession(c, 7, model.RoleBorrower)

	require.NoError(t, h.Borrow(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReturn_LateFeeInMessage(t *testing.T) {
	feeVal := 1.00
	returned := time.Date(2025, 4, 16, 10, 0, 0, 0, time.UTC)
	ls := &loanSvcMock{
		returnFn: func(ctx context.Context, userID, borrowerID int64, librarianID *int64) (*loansvc.Returned, error) {
			require.Equal(t, int64(7), userID)
			require.Equal(t, int64(3), borrowerID)
			return &loansvc.Returned{ReturnDate: returned, LateFee: &feeVal}, nil
		},
	}
	e := echo.New()
	h := newController(ls, &availSvcMock{})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/books/return", `{"borrower_id":3}`), rec)
	withSession(c, 7, model.RoleBorrower)

	require.NoError(t, h.Return(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Late fee: $1.00")
	require.Contains(t, rec.Body.String(), `"late_fee":1`)
}

func TestReturn_OnTime(t *testing.T) {
	ls := &loanSvcMock{
		returnFn: func(ctx context.Context, userID, borrowerID int64, librarianID *int64) (*loansvc.Returned, error) {
			return &loansvc.Returned{ReturnDate: time.Now().UTC()}, nil
		},
	}
	e := echo.New()
	h := newController(ls, &availSvcMock{})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/books/return", `{"borrower_id":3}`), rec)
	withSession(c, 7, model.RoleBorrower)

	require.NoError(t, h.Return(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"late_fee":null`)
	require.NotContains(t, rec.Body.String(), "Late fee:")
}

func TestReturn_NotFound(t *testing.T) {
	ls := &loanSvcMock{
		returnFn: func(ctx context.Context, userID, borrowerID int64, librarianID *int64) (*loansvc.Returned, error) {
			return nil, codedErr{code: loansvc.ErrLoanNotFound}
		},
	}
	e := echo.New()
	h := newController(ls, &availSvcMock{})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/books/return", `{"borrower_id":404}`), rec)
	withSession(c, 7, model.RoleBorrower)

	require.NoError(t, h.Return(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "not found or book already returned")
}

func TestAvailableForBook_NotFound(t *testing.T) {
	as := &availSvcMock{
		forBookFn: func(ctx context.Context, bookID int64) (*availabilitysvc.BookAvailability, error) {
			return nil, availabilitysvc.ErrBookNotFound
		},
	}
	e := echo.New()
	h := newController(&loanSvcMock{}, as)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/books/available/404", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("404")

	require.NoError(t, h.AvailableForBook(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAvailableForBook_EmptyCopies(t *testing.T) {
	as := &availSvcMock{
		forBookFn: func(ctx context.Context, bookID int64) (*availabilitysvc.BookAvailability, error) {
			return &availabilitysvc.BookAvailability{
				Book:   model.BookSummary{ID: bookID, Title: "Dune", Author: "Herbert"},
				Copies: []model.AvailableCopy{},
			}, nil
		},
	}
	e := echo.New()
	h := newController(&loanSvcMock{}, as)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/books/available/3", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, h.AvailableForBook(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"count":0`)
	require.Contains(t, rec.Body.String(), `"copies":[]`)
}
