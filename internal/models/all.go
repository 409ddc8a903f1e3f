package models

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&Salon{},
		&User{},
		&Stylist{},
		&StylistBreak{},
		&ServiceCollection{},
		&Service{},
		&Client{},
		&Product{},
		&Appointment{},
		&Order{},
		&OrderItem{},
		&PaymentDetail{},
		&AuditLog{},
	}
}
