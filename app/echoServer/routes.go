package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Ursulinastarry/book-library/app/echoServer/controller/book"
	"github.com/Ursulinastarry/book-library/app/echoServer/controller/loan"
)

type C struct {
	Book *book.Controller
	Loan *loan.Controller

	SessionSecret string
}

func Register(e *echo.Echo, c C) {
	// Session cookie minted by the user-service; verifying it here is all
	// the coupling the two services share.
	session := echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.SessionSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "cookie:session",
		// A missing or bad cookie means no caller identity, 401 not 400.
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized"})
		},
	})

	// Catalog reads are public.
	e.GET("/books", c.Book.List)
	e.GET("/books/stats", c.Book.Stats)
	e.GET("/books/available", c.Loan.Available)
	e.GET("/books/available/:id", c.Loan.AvailableForBook)
	e.GET("/books/:id", c.Book.Detail)

	// Catalog mutations; role gating happens in the controller.
	e.POST("/books", c.Book.Create, session)
	e.PUT("/books/:id", c.Book.Update, session)
	e.PATCH("/books/:id", c.Book.PartialUpdate, session)
	e.DELETE("/books/:id", c.Book.Delete, session)

	// Loan lifecycle.
	e.POST("/books/borrow", c.Loan.Borrow, session)
	e.POST("/books/return", c.Loan.Return, session)
	e.GET("/books/loans", c.Loan.MyLoans, session)
}
