package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"invoicedesk/internal/auth"
	"invoicedesk/internal/repository/memory"
)

func TestUserServiceRegisterLogin(t *testing.T) {
	ctx := context.Background()
	issuer := auth.NewIssuer([]byte("secret"), time.Hour)
	svc := NewUserService(memory.NewUserRepository(nil), issuer)

	reg, err := svc.Register(ctx, RegisterRequest{Name: "Rina", Email: "Rina@Example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.User.Email != "rina@example.com" || reg.ExpiresIn != 3600 {
		t.Errorf("register = %+v", reg)
	}

	if _, err := svc.Register(ctx, RegisterRequest{Email: "rina@example.com", Password: "another1"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate err = %v", err)
	}

	login, err := svc.Login(ctx, LoginRequest{Email: "rina@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	sess, err := issuer.Parse(login.Token)
	if err != nil {
		t.Fatal(err)
	}
	me, err := svc.Me(ctx, sess)
	if err != nil || me.ID != reg.User.ID {
		t.Errorf("Me = %+v, %v", me, err)
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "rina@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v", err)
	}
	if _, err := svc.Me(ctx, nil); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("anonymous Me err = %v", err)
	}
}

func TestUserServiceRegisterValidation(t *testing.T) {
	svc := NewUserService(memory.NewUserRepository(nil), auth.NewIssuer([]byte("s"), time.Hour))
	var verr *ValidationError
	if _, err := svc.Register(context.Background(), RegisterRequest{Email: "not-an-email", Password: "hunter22"}); !errors.As(err, &verr) {
		t.Errorf("err = %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.co", Password: "123"}); !errors.As(err, &verr) {
		t.Errorf("err = %v", err)
	}
}
