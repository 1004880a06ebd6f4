package store

import "testing"

func TestUserStoreCreate(t *testing.T) {
	db := testDB(t)

	name := uniqueName("user-create")
	user := mustCreateUser(t, db, name, false)

	if user.ID == 0 {
		t.Error("expected non-zero id")
	}
	if user.Name != name {
		t.Errorf("name: got %q, want %q", user.Name, name)
	}
	if user.Admin {
		t.Error("expected admin=false")
	}
	if !user.Active {
		t.Error("expected active=true for new user")
	}
	if user.PasswordHash == "" {
		t.Error("expected non-empty password hash")
	}
	if user.PasswordHash == "testpass123" {
		t.Error("password hash must not be plaintext")
	}
}

func TestUserStoreFindByName(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	name := uniqueName("user-find")

	user, err := s.FindByName(name)
	if err != nil {
		t.Fatalf("FindByName (absent): %v", err)
	}
	if user != nil {
		t.Fatal("expected nil for absent user")
	}

	created := mustCreateUser(t, db, name, true)

	user, err = s.FindByName(name)
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if user == nil || user.ID != created.ID {
		t.Fatalf("FindByName returned %+v, want id %d", user, created.ID)
	}
	if !user.Admin {
		t.Error("expected admin=true")
	}
}

func TestUserStoreCheckPassword(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	user := mustCreateUser(t, db, uniqueName("user-pass"), false)

	if !s.CheckPassword(user, "testpass123") {
		t.Error("correct password rejected")
	}
	if s.CheckPassword(user, "wrongpass") {
		t.Error("wrong password accepted")
	}
}

func TestUserStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	user := mustCreateUser(t, db, uniqueName("user-upd"), false)
	newName := uniqueName("user-upd-renamed")
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE name = $1", newName) })

	found, err := s.Update(user.ID, newName, "newpass456", true)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}

	updated, err := s.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if updated.Name != newName {
		t.Errorf("name: got %q, want %q", updated.Name, newName)
	}
	if !updated.Admin {
		t.Error("expected admin=true after update")
	}
	if !s.CheckPassword(updated, "newpass456") {
		t.Error("new password rejected")
	}
	if s.CheckPassword(updated, "testpass123") {
		t.Error("old password still accepted")
	}

	found, err = s.Update(999999999, uniqueName("nobody"), "pw", false)
	if err != nil {
		t.Fatalf("Update (missing): %v", err)
	}
	if found {
		t.Error("expected found=false for missing id")
	}
}

func TestUserStoreDuplicateName(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	name := uniqueName("user-dup")
	mustCreateUser(t, db, name, false)

	_, err := s.Create(name, "otherpass", false)
	if err == nil {
		t.Fatal("expected error for duplicate name")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got %v", err)
	}
}
