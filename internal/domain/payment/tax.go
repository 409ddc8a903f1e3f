package payment

import "github.com/BruksfildServices01/salon-pos/internal/domain/money"

// DefaultGSTPercent is the standard GST rate applied to non-cash sales.
const DefaultGSTPercent int64 = 18

// TaxFor returns the tax levied on subtotal for the given payment mix.
//
// An all-cash sale carries no tax. Any non-cash method, alone or mixed
// with cash, taxes the full subtotal. An empty mix is quoted as non-cash.
func TaxFor(subtotal money.Amount, methods []Method, ratePercent int64) money.Amount {
	if len(methods) > 0 && allCash(methods) {
		return 0
	}
	return subtotal.Percent(ratePercent)
}

func allCash(methods []Method) bool {
	for _, m := range methods {
		if m != MethodCash {
			return false
		}
	}
	return true
}
