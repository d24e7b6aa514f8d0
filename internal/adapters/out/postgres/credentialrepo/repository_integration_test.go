package credentialrepo_test

import (
	"context"
	"testing"
	"time"

	"logistic/internal/adapters/out/postgres/credentialrepo"
	"logistic/internal/core/ports"
	"logistic/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CredentialRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *credentialrepo.GormCredentialRepository
}

func (suite *CredentialRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&credentialrepo.CredentialDTO{})
	suite.Require().NoError(err)

	suite.repo = credentialrepo.NewGormCredentialRepository(db)
}

func (suite *CredentialRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *CredentialRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE delivery_api_credentials").Error
	suite.Require().NoError(err)
}

func (suite *CredentialRepositoryTestSuite) TestSaveAndGet() {
	ctx := context.Background()

	err := suite.repo.Save(ctx, ports.Credential{
		ServiceName: "cdek",
		Login:       "account",
		Secret:      "password",
	})
	suite.Require().NoError(err)

	cred, err := suite.repo.Get(ctx, "cdek")
	suite.Require().NoError(err)
	suite.Equal("cdek", cred.ServiceName)
	suite.Equal("account", cred.Login)
	suite.Equal("password", cred.Secret)
	suite.Empty(cred.Token)
	suite.Nil(cred.ExpiresAt)
}

func (suite *CredentialRepositoryTestSuite) TestGet_UnknownService_ReturnsNotFound() {
	_, err := suite.repo.Get(context.Background(), "unknown")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CredentialRepositoryTestSuite) TestSave_SameService_Replaces() {
	ctx := context.Background()

	err := suite.repo.Save(ctx, ports.Credential{ServiceName: "dellin", Token: "old-appkey"})
	suite.Require().NoError(err)
	err = suite.repo.Save(ctx, ports.Credential{ServiceName: "dellin", Token: "new-appkey"})
	suite.Require().NoError(err)

	cred, err := suite.repo.Get(ctx, "dellin")
	suite.Require().NoError(err)
	suite.Equal("new-appkey", cred.Token)

	var count int64
	err = suite.db.Model(&credentialrepo.CredentialDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.EqualValues(1, count)
}

func (suite *CredentialRepositoryTestSuite) TestPutToken_StoresTokenAndExpiry() {
	ctx := context.Background()

	err := suite.repo.Save(ctx, ports.Credential{
		ServiceName: "cdek", Login: "account", Secret: "password",
	})
	suite.Require().NoError(err)

	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	err = suite.repo.PutToken(ctx, "cdek", "fresh-token", expiresAt)
	suite.Require().NoError(err)

	cred, err := suite.repo.Get(ctx, "cdek")
	suite.Require().NoError(err)
	suite.Equal("fresh-token", cred.Token)
	suite.Require().NotNil(cred.ExpiresAt)
	suite.True(cred.HasValidToken(time.Now()))
	// the identity is untouched
	suite.Equal("account", cred.Login)
}

func (suite *CredentialRepositoryTestSuite) TestPutToken_UnknownService_ReturnsNotFound() {
	err := suite.repo.PutToken(context.Background(), "unknown", "token", time.Now())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestCredentialRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CredentialRepositoryTestSuite))
}
