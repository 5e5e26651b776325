package service

import (
	"context"
	"fmt"

	"github.com/invoicehub/invoicehub.go/db/models"
	"github.com/invoicehub/invoicehub.go/lib/security"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

func (svc *InvoicehubService) CreateUser(ctx context.Context, login, password, email string) (user *models.User, err error) {

	user = &models.User{}

	// generate user login/password if not provided
	user.Login = login
	if login == "" {
		user.Login = randomAlphaNum(20)
	}
	user.Email = email

	if password == "" {
		password = randomAlphaNum(20)
	} else {
		if svc.Config.MinPasswordEntropy > 0 {
			entropy := passwordvalidator.GetEntropy(password)
			if entropy < float64(svc.Config.MinPasswordEntropy) {
				return nil, fmt.Errorf("password entropy is too low (%f), required is %d", entropy, svc.Config.MinPasswordEntropy)
			}
		}
	}

	// we only store the hashed password but return the initial plain text password in the HTTP response
	user.Password = security.HashPassword(password)

	_, err = svc.DB.NewInsert().Model(user).Exec(ctx)

	//return actual password in the response, not the hashed one
	user.Password = password
	return user, err
}

func (svc *InvoicehubService) FindUser(ctx context.Context, userId int64) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("id = ?", userId).Limit(1).Scan(ctx)
	if err != nil {
		return &user, err
	}
	return &user, nil
}

func (svc *InvoicehubService) FindUserByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("login = ?", login).Limit(1).Scan(ctx)
	if err != nil {
		return &user, err
	}
	return &user, nil
}

// UpdateUserProfile stores the onboarding fields that prefill the "from"
// section when a new invoice is composed.
func (svc *InvoicehubService) UpdateUserProfile(ctx context.Context, userId int64, firstName, lastName, address string) (*models.User, error) {
	user, err := svc.FindUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	user.FirstName = firstName
	user.LastName = lastName
	user.Address = address
	_, err = svc.DB.NewUpdate().Model(user).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}
	return user, nil
}
