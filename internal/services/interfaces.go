package services

import (
	"context"
	"io"

	"rentalog/internal/models"
	"rentalog/internal/pagination"
)

// LogRecorder is notified of committed rental log entries.
type LogRecorder interface {
	RecordLogEntries(action models.LogAction, n int)
}

// SignupInput carries the fields of a new account.
type SignupInput struct {
	Email     string      `json:"email" binding:"required,email"`
	Password  string      `json:"password" binding:"required,min=8"`
	NIB       string      `json:"nib" binding:"required,nib"`
	Role      models.Role `json:"role" binding:"required,role"`
	AgentName string      `json:"agent_name"`
}

// UserServicer defines the contract for the credential store.
type UserServicer interface {
	Signup(ctx context.Context, input SignupInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// UnitStatus is a unit together with its derived occupancy.
type UnitStatus struct {
	models.Unit
	Key      string `json:"key"`
	Occupied bool   `json:"occupied"`
}

// CreateUnitInput carries the fields of a new unit.
type CreateUnitInput struct {
	AgentID uint   `json:"agent_id" binding:"required"`
	Tower   string `json:"tower" binding:"required,max=10"`
	Floor   string `json:"floor" binding:"required,max=10"`
	Number  string `json:"number" binding:"required,max=10"`
}

// UnitServicer defines the contract for the unit registry and occupancy resolver.
type UnitServicer interface {
	OccupiedUnits(ctx context.Context) ([]string, error)
	ListUnits(ctx context.Context, actor *models.Actor) ([]UnitStatus, error)
	CreateUnit(ctx context.Context, input CreateUnitInput) (*models.Unit, error)
	DeleteUnit(ctx context.Context, id uint) error
	ListAgents(ctx context.Context) ([]models.Agent, error)
}

// CreateRentalInput is the payload of a new rental. Dates are YYYY-MM-DD and
// times HH:MM. CheckoutDate is ignored for monthly rentals, whose checkout is
// derived from LeaseMonths.
type CreateRentalInput struct {
	Name               string   `json:"nama"`
	NIK                string   `json:"nik"`
	MaritalStatus      string   `json:"status_pasutri"`
	Tower              string   `json:"tower"`
	Floor              string   `json:"lantai"`
	Unit               string   `json:"unit"`
	CitizenshipStatus  string   `json:"status_kewarganegaraan"`
	RentalType         string   `json:"jenis_sewa"`
	LeaseMonths        int      `json:"lama_sewa_bulan"`
	PaymentMethod      string   `json:"metode_pembayaran"`
	PaymentMethodOther string   `json:"metode_lain"`
	CheckinDate        string   `json:"tanggal_checkin"`
	CheckinTime        string   `json:"waktu_checkin"`
	CheckoutDate       string   `json:"tanggal_checkout"`
	Comments           []string `json:"komentar"`
}

// RentalServicer defines the contract for the rental record store and its
// log reconstruction.
type RentalServicer interface {
	CreateRental(ctx context.Context, actor *models.Actor, input CreateRentalInput) (*models.Rental, error)
	ListRentals(ctx context.Context, actor *models.Actor) ([]models.Rental, error)
	GetRental(ctx context.Context, actor *models.Actor, id uint) (*models.Rental, error)
	ListRentalLogs(ctx context.Context, actor *models.Actor, rentalID uint) ([]models.RentalLog, error)
	ListAllLogs(ctx context.Context, actor *models.Actor, page pagination.PageRequest) (*pagination.PageResponse[models.RentalLog], error)
	ExportLogs(ctx context.Context, actor *models.Actor) ([]models.RentalLog, error)
}

// RentalUpdate proposes new values for the mutable rental fields. Nil fields
// are left alone. An empty CheckoutTime clears it.
type RentalUpdate struct {
	RentalType         *string   `json:"jenis_sewa"`
	PaymentMethod      *string   `json:"metode_pembayaran"`
	PaymentMethodOther *string   `json:"metode_lain"`
	CheckoutTime       *string   `json:"waktu_checkout"`
	Comments           *[]string `json:"komentar"`
}

// UpdateResult reports how many fields an update changed.
type UpdateResult struct {
	UpdatedFieldCount int `json:"updated_field_count"`
}

// ChangeLogServicer defines the contract for the diff-and-log write path.
// Every successful change commits the row update and one log entry per
// changed field in a single transaction.
type ChangeLogServicer interface {
	ApplyRentalUpdate(ctx context.Context, actor *models.Actor, rentalID uint, update RentalUpdate) (*UpdateResult, error)
	SetCheckoutTime(ctx context.Context, actor *models.Actor, rentalID uint, clock string) (*UpdateResult, error)
	ReplaceComments(ctx context.Context, actor *models.Actor, rentalID uint, comments []string) (*UpdateResult, error)
	AppendComment(ctx context.Context, actor *models.Actor, rentalID uint, comment string) (*UpdateResult, error)
}

// SeriesRange selects the window and bucket size of a rental series.
type SeriesRange string

const (
	Range7Days  SeriesRange = "7d"
	Range1Month SeriesRange = "1m"
	RangeAll    SeriesRange = "all"
)

// SeriesPoint is one bucket of a rental series. Period is YYYY-MM-DD for
// daily buckets and YYYY-MM for monthly ones.
type SeriesPoint struct {
	Period string `json:"period"`
	Count  int64  `json:"count"`
}

// UnitCount is a unit and how many rentals it had.
type UnitCount struct {
	Tower string `gorm:"column:tower" json:"tower"`
	Floor string `gorm:"column:lantai" json:"lantai"`
	Unit  string `gorm:"column:unit" json:"unit"`
	Key   string `gorm:"-" json:"key"`
	Count int64  `gorm:"column:rental_count" json:"count"`
}

// Summary holds headline dashboard figures.
type Summary struct {
	TotalRentals  int64                       `json:"total_rentals"`
	ActiveRentals int64                       `json:"active_rentals"`
	OccupiedUnits int                         `json:"occupied_units"`
	ByRentalType  map[models.RentalType]int64 `json:"by_rental_type"`
}

// AgentPerformance aggregates the rentals filed by one agent.
type AgentPerformance struct {
	AgentEmail string `gorm:"column:email_agent" json:"email_agent"`
	Rentals    int64  `gorm:"column:rental_count" json:"rentals"`
	Nights     int64  `gorm:"column:nights" json:"nights"`
}

// DuplicateNIK is a national ID that appears on more than one rental.
type DuplicateNIK struct {
	NIK     string   `gorm:"column:nik" json:"nik"`
	Count   int64    `gorm:"column:rental_count" json:"count"`
	Names   []string `gorm:"-" json:"names"`
	Rentals []uint   `gorm:"-" json:"rental_ids"`
}

// ReportServicer defines the contract for dashboard aggregations.
type ReportServicer interface {
	Summary(ctx context.Context, actor *models.Actor) (*Summary, error)
	RentalSeries(ctx context.Context, actor *models.Actor, rng SeriesRange) ([]SeriesPoint, error)
	TopUnits(ctx context.Context, actor *models.Actor, limit int) ([]UnitCount, error)
	AgentPerformance(ctx context.Context) ([]AgentPerformance, error)
	DuplicateNIKs(ctx context.Context) ([]DuplicateNIK, error)
}

// Upload is an optional photo attached to a violation.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// ViolationInput carries the editable fields of a violation.
type ViolationInput struct {
	RentalID    uint
	Description string
	Photo       *Upload
	RemovePhoto bool
}

// ViolationServicer defines the contract for violation reports.
type ViolationServicer interface {
	ListViolations(ctx context.Context, actor *models.Actor, rentalID *uint) ([]models.Violation, error)
	CreateViolation(ctx context.Context, actor *models.Actor, input ViolationInput) (*models.Violation, error)
	UpdateViolation(ctx context.Context, actor *models.Actor, id uint, input ViolationInput) (*models.Violation, error)
	DeleteViolation(ctx context.Context, id uint) error
}
