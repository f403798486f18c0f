package models

// All lists every GORM model in dependency order.
var All = []any{
	&Agent{},
	&User{},
	&Unit{},
	&Rental{},
	&RentalLog{},
	&Violation{},
}
