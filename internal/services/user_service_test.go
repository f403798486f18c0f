package services

import (
	"context"
	"testing"

	"rentalog/internal/models"
	"rentalog/internal/testutil"
)

func validSignup(email string, role models.Role) SignupInput {
	return SignupInput{
		Email:    email,
		Password: "password123",
		NIB:      "1234567890123",
		Role:     role,
	}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("agent_gets_agent_record", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		input := validSignup("Budi@Example.com", models.RoleAgent)
		input.AgentName = "Budi Property"
		user, err := svc.Signup(ctx, input)
		testutil.AssertNoError(t, err)

		if user.Email != "budi@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
		if user.AgentID == nil {
			t.Fatal("expected agent to be linked")
		}
		var agent models.Agent
		if err := db.First(&agent, *user.AgentID).Error; err != nil {
			t.Fatalf("agent not stored: %v", err)
		}
		if agent.Name != "Budi Property" {
			t.Errorf("expected agent name Budi Property, got %s", agent.Name)
		}
	})

	t.Run("agent_name_defaults_to_email_local_part", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.Signup(ctx, validSignup("sari@example.com", models.RoleAgent))
		testutil.AssertNoError(t, err)

		var agent models.Agent
		db.First(&agent, *user.AgentID)
		if agent.Name != "sari" {
			t.Errorf("expected agent name sari, got %s", agent.Name)
		}
	})

	t.Run("admin_has_no_agent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.Signup(ctx, validSignup("pkj@example.com", models.RolePKJ))
		testutil.AssertNoError(t, err)
		if user.AgentID != nil {
			t.Error("expected no agent for admin roles")
		}
		var count int64
		db.Model(&models.Agent{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no agents, got %d", count)
		}
	})

	t.Run("duplicate_email_inserted_after_check", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		testutil.InsertBeforeCreate(t, db, "users", &models.User{
			Email:        "race@example.com",
			PasswordHash: "x",
			NIB:          "1234567890123",
			Role:         models.RolePKJ,
		})

		_, err := svc.Signup(ctx, validSignup("race@example.com", models.RolePKJ))
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.Signup(ctx, validSignup("dup@example.com", models.RoleAgent))
		testutil.AssertNoError(t, err)

		_, err = svc.Signup(ctx, validSignup("DUP@example.com", models.RoleAgent))
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")

		var agents int64
		db.Model(&models.Agent{}).Count(&agents)
		if agents != 1 {
			t.Errorf("expected 1 agent after rejected signup, got %d", agents)
		}
	})

	invalid := []struct {
		name string
		mut  func(*SignupInput)
	}{
		{"invalid_email", func(in *SignupInput) { in.Email = "not-an-email" }},
		{"short_password", func(in *SignupInput) { in.Password = "short" }},
		{"bad_nib", func(in *SignupInput) { in.NIB = "12345" }},
		{"unknown_role", func(in *SignupInput) { in.Role = "admin" }},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			defer testutil.TeardownTestDB(t, db)
			svc := NewUserService(db)

			input := validSignup("x@example.com", models.RoleAgent)
			tt.mut(&input)
			_, err := svc.Signup(ctx, input)
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		})
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		created := testutil.CreateTestUserWithEmail(t, db, "login@example.com", models.RoleHeadAgent)
		user, err := svc.Authenticate(ctx, " Login@Example.com ", testutil.TestPassword)
		testutil.AssertNoError(t, err)

		if user.ID != created.ID {
			t.Errorf("expected user %d, got %d", created.ID, user.ID)
		}
		actor := user.Actor()
		if actor.Role != models.RoleHeadAgent || !actor.IsAdmin() {
			t.Errorf("unexpected actor %+v", actor)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		testutil.CreateTestUserWithEmail(t, db, "login@example.com", models.RoleAgent)
		_, err := svc.Authenticate(ctx, "login@example.com", "wrongpassword")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.Authenticate(ctx, "ghost@example.com", testutil.TestPassword)
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestGetUserByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found_with_agent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		created := testutil.CreateTestUser(t, db, models.RoleAgent)
		user, err := svc.GetUserByID(ctx, created.ID)
		testutil.AssertNoError(t, err)

		if user.Email != created.Email {
			t.Errorf("expected email %s, got %s", created.Email, user.Email)
		}
		if user.Agent == nil {
			t.Error("expected agent to be preloaded")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByID(ctx, 99999)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
