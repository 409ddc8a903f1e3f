package payment

import "github.com/BruksfildServices01/salon-pos/internal/httperr"

// ===============================
// Payment Method
// ===============================

type Method string

const (
	MethodCash       Method = "cash"
	MethodCreditCard Method = "credit_card"
	MethodDebitCard  Method = "debit_card"
	MethodUPI        Method = "upi"
	MethodBNPL       Method = "bnpl"
)

// Methods lists every accepted method in display order.
func Methods() []Method {
	return []Method{MethodCash, MethodCreditCard, MethodDebitCard, MethodUPI, MethodBNPL}
}

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodCreditCard, MethodDebitCard, MethodUPI, MethodBNPL:
		return true
	}
	return false
}

// Deferred reports whether the method leaves the money owed by the client.
func (m Method) Deferred() bool {
	return m == MethodBNPL
}

// Card methods go through the external gateway when one is configured.
func (m Method) Card() bool {
	return m == MethodCreditCard || m == MethodDebitCard || m == MethodUPI
}

func ParseMethod(s string) (Method, error) {
	m := Method(s)
	if !m.Valid() {
		return "", httperr.ErrBusiness("invalid_payment_method")
	}
	return m, nil
}
