package models

import "time"

// RentalType is the billing plan of a stay.
type RentalType string

const (
	RentalTypeDaily   RentalType = "Harian"
	RentalTypeWeekly  RentalType = "Mingguan"
	RentalTypeMonthly RentalType = "Bulanan"
)

// Valid reports whether t is a known rental type.
func (t RentalType) Valid() bool {
	switch t {
	case RentalTypeDaily, RentalTypeWeekly, RentalTypeMonthly:
		return true
	}
	return false
}

// StandardPaymentMethods are the payment methods that need no free-text
// description. Any other method requires metode_lain to be filled.
var StandardPaymentMethods = []string{"Kartu Kredit", "Cash", "Kartu Debit", "QRIS"}

// IsStandardPaymentMethod reports whether method is one of StandardPaymentMethods.
func IsStandardPaymentMethod(method string) bool {
	for _, m := range StandardPaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Rental is one tenancy record. Column names follow the client's field names.
type Rental struct {
	ID                 uint          `gorm:"primaryKey" json:"id"`
	Name               string        `gorm:"column:nama;not null;size:255" json:"nama"`
	NIK                *string       `gorm:"column:nik;size:16;index" json:"nik"`
	MaritalStatus      string        `gorm:"column:status_pasutri;size:50" json:"status_pasutri"`
	Tower              string        `gorm:"column:tower;not null;size:10" json:"tower"`
	Floor              string        `gorm:"column:lantai;not null;size:10" json:"lantai"`
	Unit               string        `gorm:"column:unit;not null;size:10" json:"unit"`
	CitizenshipStatus  string        `gorm:"column:status_kewarganegaraan;size:10" json:"status_kewarganegaraan"`
	RentalType         RentalType    `gorm:"column:jenis_sewa;type:varchar(10);not null" json:"jenis_sewa"`
	PaymentMethod      string        `gorm:"column:metode_pembayaran;size:50" json:"metode_pembayaran"`
	PaymentMethodOther string        `gorm:"column:metode_lain;size:50" json:"metode_lain"`
	CheckinDate        Date          `gorm:"column:tanggal_checkin;not null;index" json:"tanggal_checkin"`
	CheckinTime        ClockTime     `gorm:"column:waktu_checkin" json:"waktu_checkin"`
	CheckoutDate       Date          `gorm:"column:tanggal_checkout;not null;index" json:"tanggal_checkout"`
	CheckoutTime       NullClockTime `gorm:"column:waktu_checkout" json:"waktu_checkout"`
	DurationDays       int           `gorm:"column:lama_menginap;not null;default:0" json:"lama_menginap"`
	Comments           Comments      `gorm:"column:komentar" json:"komentar"`
	AgentEmail         string        `gorm:"column:email_agent;not null;size:255;index" json:"email_agent"`
	LastEditor         string        `gorm:"column:diedit_oleh;size:255" json:"diedit_oleh"`
	CreatedAt          time.Time     `json:"created_at"`

	Logs []RentalLog `gorm:"foreignKey:RentalID" json:"logs"`
}

// UnitKey returns the tower-floor-number key of the rented unit.
func (r *Rental) UnitKey() string {
	return UnitKey(r.Tower, r.Floor, r.Unit)
}

// NIKString returns the national ID or "" when absent.
func (r *Rental) NIKString() string {
	if r.NIK == nil {
		return ""
	}
	return *r.NIK
}
