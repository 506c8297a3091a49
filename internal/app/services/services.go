package services

import (
	"accounts/internal/app/deps"
	"accounts/internal/core/services"
	loginwithemail "accounts/internal/core/services/log_in_with_email"
	resetpassword "accounts/internal/core/services/reset_password"
	sendpasswordresettoken "accounts/internal/core/services/send_password_reset_token"
	signup "accounts/internal/core/services/sign_up"
)

type Services struct {
	SignUp                 services.Service[signup.Input, signup.Result]
	LogInWithEmail         services.Service[loginwithemail.Input, loginwithemail.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUp = signup.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)
	s.LogInWithEmail = loginwithemail.New(
		deps.Logger,
		deps.AccountRepository,
		deps.PasswordHasher,
		deps.TokenCodec,
		deps.Config.SessionTokenTTL,
	)
	s.SendPasswordResetToken = sendpasswordresettoken.New(
		deps.Logger,
		deps.AccountRepository,
		deps.TokenCodec,
		deps.ResetTokenSender,
		deps.Config.PasswordResetTokenTTL,
		deps.Now,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.AccountRepository,
		deps.TokenCodec,
		deps.PasswordHasher,
		deps.Now,
	)

	return s
}
