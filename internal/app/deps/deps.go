package deps

import (
	"context"
	"sync"
	"time"

	"accounts/internal/config"
	"accounts/internal/core/domain/account"
	dl "accounts/internal/core/domain/logging"
	duow "accounts/internal/core/domain/unit_of_work"
	uow "accounts/internal/db/unit_of_work"
	dbaccount "accounts/internal/db/account"
	"accounts/internal/implementations/email"
	"accounts/internal/implementations/logging"
	passwordhasher "accounts/internal/implementations/password_hasher"
	"accounts/internal/implementations/token"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB *pgxpool.Pool

	Now func() time.Time

	UnitOfWork        duow.UnitOfWork
	AccountRepository account.AccountRepository

	PasswordHasher   account.PasswordHasher
	TokenCodec       account.TokenCodec
	ResetTokenSender account.ResetTokenSender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.AccountRepository = dbaccount.NewPgxRepository(deps.DB)

	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.TokenCodec = token.NewJWTCodec(deps.Config.Secret, deps.Now)
	deps.ResetTokenSender = email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.Config.AwsEmailPasswordResetTemplate,
		deps.Config.AwsEmailPasswordResetBaseUrl,
	)

	return deps, func() {
		closeFuncs := []func(){
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}
