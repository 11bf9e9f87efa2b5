package service

import (
	"ClaimVault/model"
	"testing"
)

// TestCreateUser tests operator creation.
func TestCreateUser(t *testing.T) {
	cleanTables(t)

	user := &model.User{
		UserName: "test_create",
		Password: "123456",
		Email:    "create@test.com",
		IsActive: true,
	}
	if err := CreateUser(user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("user ID should not be zero after create")
	}
	if user.Password == "123456" {
		t.Error("password should be hashed before storing")
	}
}

// TestCheckPassword verifies the stored hash.
func TestCheckPassword(t *testing.T) {
	cleanTables(t)

	user := &model.User{
		UserName: "test_pwd",
		Password: "open sesame",
		Email:    "pwd@test.com",
		IsActive: true,
	}
	if err := CreateUser(user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := CheckPassword("test_pwd", "open sesame"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := CheckPassword("test_pwd", "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}

// TestIsExist looks up a user by name.
func TestIsExist(t *testing.T) {
	cleanTables(t)

	user := &model.User{
		UserName: "test_exist",
		Password: "123",
		Email:    "exist@test.com",
	}
	if err := CreateUser(user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	found, err := IsExist("test_exist")
	if err != nil {
		t.Fatalf("IsExist failed: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("found id = %d, want %d", found.ID, user.ID)
	}
	if _, err := IsExist("nobody"); err == nil {
		t.Error("unknown user should not exist")
	}
}
