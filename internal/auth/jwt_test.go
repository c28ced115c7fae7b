package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	want := Identity{UserID: "user-123", Email: "tech@example.com", Role: RoleTechnician}

	token, err := GenerateToken(want)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestGenerateToken_EmptyUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := GenerateToken(Identity{Email: "x@y.z", Role: RoleCustomer}); err == nil {
		t.Fatal("expected error for empty userID")
	}
}

func TestGenerateToken_UnknownRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := GenerateToken(Identity{UserID: "u1", Role: Role("superuser")}); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
