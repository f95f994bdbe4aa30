package middleware

import (
	"net/http"

	"varanno/api/contexts"
	"varanno/api/models/constants/chromosome"

	"github.com/labstack/echo"
)

/*
	Echo middleware to validate an optional `chromosome` HTTP query parameter
*/
func ValidateOptionalChromosomeAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.VarannoContext)

		// check for chromosome query parameter
		chromQP := c.QueryParam("chromosome")
		if len(chromQP) == 0 {
			return next(c)
		}

		// verify: 1-22, X, Y or M, with or without a "chr" prefix
		if !chromosome.IsValidHumanChromosome(chromQP) {
			return echo.NewHTTPError(http.StatusBadRequest, "Please provide a valid 'chromosome' (1-22, X, Y, M)!")
		}

		gc.Chromosome = chromosome.Normalize(chromQP)
		return next(c)
	}
}
