package middleware

import (
	"net/http"
	"strconv"

	"varanno/api/contexts"

	"github.com/labstack/echo"
)

func ValidateOptionalCalibratedBounds(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.VarannoContext)

		var (
			lowerBound int
			upperBound int

			lowerBoundPointer *int // simulate "nullable" int
			upperBoundPointer *int
		)

		// check for a 'lowerBound' query paramter
		lowerBoundQP := c.QueryParam("lowerBound")
		if len(lowerBoundQP) > 0 {
			// try to convert to an integer
			lb, conversionErr := strconv.Atoi(lowerBoundQP)
			if conversionErr != nil || lb < 1 {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid 'lowerBound'!")
			}
			lowerBound = lb
			lowerBoundPointer = &lowerBound
		}

		// check for an 'upperBound' query paramter
		upperBoundQP := c.QueryParam("upperBound")
		if len(upperBoundQP) > 0 {
			// try to convert to an integer
			ub, conversionErr := strconv.Atoi(upperBoundQP)
			if conversionErr != nil || ub < 1 {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid 'upperBound'!")
			}
			upperBound = ub
			upperBoundPointer = &upperBound
		}

		// either bound may be given alone, but both
		// together must be balanced
		if upperBoundPointer != nil && lowerBoundPointer != nil && upperBound < lowerBound {
			// if upper bound is less than the lower bound
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid lower and upper bounds!")
		}

		gc.LowerBound = lowerBound
		gc.UpperBound = upperBound
		return next(c)
	}
}
