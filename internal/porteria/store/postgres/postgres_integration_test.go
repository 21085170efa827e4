//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fcv/porteria/internal/lib/sentinel"
	"github.com/fcv/porteria/internal/porteria/model"
	"github.com/fcv/porteria/internal/porteria/store"
	"github.com/fcv/porteria/internal/porteria/store/postgres"
	"github.com/fcv/porteria/internal/porteria/store/storetest"
	"github.com/fcv/porteria/internal/testutil/containers"
)

type PostgresStoreSuite struct {
	storetest.Suite
	pg *containers.PostgresContainer
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	s := &PostgresStoreSuite{}
	s.NewStore = func() store.Store {
		s.Require().NoError(s.pg.TruncateAll(context.Background()))
		return postgres.New(s.pg.DB)
	}
	suite.Run(t, s)
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
}

func (s *PostgresStoreSuite) TestForeignKeyMapsToNotFound() {
	_, err := postgres.New(s.pg.DB).AddMembership(context.Background(), model.Membership{
		PersonID: 999, OrganizationID: 999, Role: model.RoleStaff,
	})
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrNotFound), "got %v", err)
}
