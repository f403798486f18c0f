package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"rentalog/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAgent creates an agent with a unique name.
func CreateTestAgent(t *testing.T, db *gorm.DB) *models.Agent {
	t.Helper()

	agent := &models.Agent{Name: fmt.Sprintf("Agent %d", nextID())}
	if err := db.Create(agent).Error; err != nil {
		t.Fatalf("failed to create test agent: %v", err)
	}
	return agent
}

// CreateTestUser creates a user of the given role with a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email, role)
}

// CreateTestUserWithEmail creates a user with the given email and role.
// Agents get a linked agent record, as signup does.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		NIB:          "1234567890123",
		Role:         role,
	}
	if role == models.RoleAgent {
		agent := CreateTestAgent(t, db)
		user.AgentID = &agent.ID
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestUnit creates a unit owned by agentID.
func CreateTestUnit(t *testing.T, db *gorm.DB, agentID uint, tower, floor, number string) *models.Unit {
	t.Helper()

	unit := &models.Unit{AgentID: agentID, Tower: tower, Floor: floor, Number: number}
	if err := db.Create(unit).Error; err != nil {
		t.Fatalf("failed to create test unit: %v", err)
	}
	return unit
}

// CreateTestRental creates a daily rental filed by agentEmail. The stay
// runs from two days ago until two days from now unless opts change it.
func CreateTestRental(t *testing.T, db *gorm.DB, agentEmail string, opts ...func(*models.Rental)) *models.Rental {
	t.Helper()

	n := nextID()
	today := models.Today()
	rental := &models.Rental{
		Name:              fmt.Sprintf("Tenant %d", n),
		MaritalStatus:     "Belum Menikah",
		Tower:             "A",
		Floor:             "10",
		Unit:              fmt.Sprintf("%02d", n%100),
		CitizenshipStatus: "WNI",
		RentalType:        models.RentalTypeDaily,
		PaymentMethod:     "Cash",
		CheckinDate:       today.AddDate(0, 0, -2),
		CheckinTime:       models.NewClockTime(14, 0),
		CheckoutDate:      today.AddDate(0, 0, 2),
		Comments:          models.Comments{},
		AgentEmail:        agentEmail,
	}
	for _, opt := range opts {
		opt(rental)
	}
	rental.DurationDays = rental.CheckinDate.DaysUntil(rental.CheckoutDate)

	if err := db.Create(rental).Error; err != nil {
		t.Fatalf("failed to create test rental: %v", err)
	}
	return rental
}

// CountLogs returns the number of log entries stored for rentalID.
func CountLogs(t *testing.T, db *gorm.DB, rentalID uint) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.RentalLog{}).Where("rental_id = ?", rentalID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count logs: %v", err)
	}
	return count
}
